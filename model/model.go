package model

import (
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

//go:generate go run ../cmd/querygen --out ./query

var snowflakeNode *snowflake.Node

var Models = []interface{}{
	&WaitlistEntry{}, &User{}, &AuditEvent{},
}

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

func GenerateID() uint {
	return uint(snowflakeNode.Generate())
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
