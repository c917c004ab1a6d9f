// Пакет migrations: SQL-миграции каталога, встроенные в бинарник.
package migrations

import "embed"

// FS: файлы миграций goose (*.sql в корне).
//
//go:embed *.sql
var FS embed.FS
