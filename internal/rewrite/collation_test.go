package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseCollation_Apply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain statement",
			in:   "CREATE DATABASE `shop` DEFAULT CHARACTER SET latin1 COLLATE latin1_swedish_ci;",
			want: "CREATE DATABASE `shop`;",
		},
		{
			name: "version comment",
			in:   "CREATE DATABASE /*!32312 IF NOT EXISTS*/ `shop` /*!40100 DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci */;",
			want: "CREATE DATABASE /*!32312 IF NOT EXISTS*/ `shop` /*!40100 */;",
		},
		{
			name: "table options untouched",
			in:   ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;",
			want: ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;",
		},
		{
			name: "does not cross statements",
			in:   "CREATE DATABASE `a`;\nCREATE TABLE t (x text) DEFAULT CHARACTER SET latin1 COLLATE latin1_bin;",
			want: "CREATE DATABASE `a`;\nCREATE TABLE t (x text) DEFAULT CHARACTER SET latin1 COLLATE latin1_bin;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DatabaseCollation{}.Apply(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseCollation_Findings(t *testing.T) {
	doc := "-- dump\nCREATE DATABASE `shop` DEFAULT CHARACTER SET latin1 COLLATE latin1_swedish_ci;\n"

	_, findings := DatabaseCollation{}.Apply(doc)
	require.Len(t, findings, 1)
	assert.Equal(t, "database-collation", findings[0].Rule)
	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, " DEFAULT CHARACTER SET latin1 COLLATE latin1_swedish_ci", findings[0].Before)
	assert.Empty(t, findings[0].After)
}
