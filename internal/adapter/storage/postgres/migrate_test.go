package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"postgres scheme",
			"postgres://user:pw@localhost:5432/pix_recebidos?sslmode=disable",
			"pgx5://user:pw@localhost:5432/pix_recebidos?sslmode=disable",
		},
		{
			"postgresql scheme",
			"postgresql://user:pw@localhost:5432/pix_recebidos",
			"pgx5://user:pw@localhost:5432/pix_recebidos",
		},
		{
			"already pgx5",
			"pgx5://user:pw@localhost:5432/pix_recebidos",
			"pgx5://user:pw@localhost:5432/pix_recebidos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migrateURL(tt.in))
		})
	}
}
