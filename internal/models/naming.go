package models

import (
	"fmt"

	"gorm.io/gorm/schema"
)

// NamingStrategy keeps gorm's defaults but gives foreign keys stable names of the form
// fk_<table>_<column>_<referenced_table>, so migrations and schema inspection can rely on them.
type NamingStrategy struct {
	schema.NamingStrategy
}

func (ns NamingStrategy) RelationshipFKName(rel schema.Relationship) string {
	for _, ref := range rel.References {
		if ref.ForeignKey == nil || ref.PrimaryKey == nil {
			continue
		}
		return fmt.Sprintf("fk_%s_%s_%s", ref.ForeignKey.Schema.Table, ref.ForeignKey.DBName, ref.PrimaryKey.Schema.Table)
	}
	return ns.NamingStrategy.RelationshipFKName(rel)
}

// ForeignKeyName is the constraint name NamingStrategy produces for table.column -> referenced.
func ForeignKeyName(table, column, referenced string) string {
	return fmt.Sprintf("fk_%s_%s_%s", table, column, referenced)
}
