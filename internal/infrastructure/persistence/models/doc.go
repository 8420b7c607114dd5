// Package models holds the GORM persistence models. Each model maps one table
// and converts to and from its domain type with ToDomain and FromDomain.
package models
