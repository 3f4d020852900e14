package library

import "context"

// SetSchemaVersionForTest overwrites the recorded schema version.
func SetSchemaVersionForTest(l *Library, version int) error {
	_, err := l.db.ExecContext(context.Background(), "UPDATE schema_version SET version = ?", version)
	return err
}
