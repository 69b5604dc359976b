package postgresql

import (
	"context"
	"embed"
	"fmt"

	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
)

//go:embed schema/payroll-schema.sql
var schemaFiles embed.FS

// Migrate applies the idempotent payroll schema.
func Migrate(ctx context.Context, db *database.DB) error {
	ddl, err := schemaFiles.ReadFile("schema/payroll-schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
