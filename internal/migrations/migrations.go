// Package migrations содержит SQL-миграции схемы БД, встроенные в бинарник.
package migrations

import "embed"

// Migrations - файлы миграций для goose.
//
//go:embed *.sql
var Migrations embed.FS
