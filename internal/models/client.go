package models

// Client is a customer that invoices are issued to.
// Clients are referenced by invoices but never own them.
type Client struct {
	ID    int64   `gorm:"column:id;primaryKey" json:"id"`
	Name  string  `gorm:"column:nombre;not null" json:"nombre"`
	TaxID *string `gorm:"column:cuit" json:"cuit"`
	Email *string `gorm:"column:email" json:"email"`
}

// TableName maps Client to the clientes table.
func (Client) TableName() string { return "clientes" }

// TaxIDOr returns the CUIT or the given placeholder when it is not set.
func (c Client) TaxIDOr(placeholder string) string {
	return valueOr(c.TaxID, placeholder)
}

// EmailOr returns the email or the given placeholder when it is not set.
func (c Client) EmailOr(placeholder string) string {
	return valueOr(c.Email, placeholder)
}

func valueOr(s *string, placeholder string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}
