package models

import (
	"github.com/motodms/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	OrgAggregateModel
	Name           string `gorm:"type:varchar(200);not null;index"`
	Phone          string `gorm:"type:varchar(50);index"`
	Email          string `gorm:"type:varchar(255)"`
	DocumentNumber string `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client aggregate.
func (m *ClientModel) ToDomain() *partner.Client {
	client := &partner.Client{
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		DocumentNumber: m.DocumentNumber,
	}
	m.PopulateOrgAggregateRoot(&client.OrgAggregateRoot)
	return client
}

// ClientModelFromDomain creates a persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		DocumentNumber: c.DocumentNumber,
	}
	m.FromDomainOrgAggregateRoot(c.OrgAggregateRoot)
	return m
}
