package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineName_Apply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"xtradb", ") ENGINE=XtraDB DEFAULT CHARSET=utf8;", ") ENGINE=InnoDB DEFAULT CHARSET=utf8;"},
		{"aria lower case", ") engine=aria;", ") ENGINE=InnoDB;"},
		{"myisam", ") ENGINE=MyISAM AUTO_INCREMENT=5;", ") ENGINE=InnoDB AUTO_INCREMENT=5;"},
		{"merge table", ") ENGINE=MRG_MyISAM;", ") ENGINE=InnoDB;"},
		{"memory", ") ENGINE=MEMORY;", ") ENGINE=InnoDB;"},
		{"columnstore", ") ENGINE=Columnstore;", ") ENGINE=InnoDB;"},
		{"tokudb", ") ENGINE=TokuDB;", ") ENGINE=InnoDB;"},
		{"already innodb", ") ENGINE=InnoDB;", ") ENGINE=InnoDB;"},
		{"ndbcluster outside set", ") ENGINE=NDBCLUSTER;", ") ENGINE=NDBCLUSTER;"},
		{"longer identifier", ") ENGINE=MyISAMish;", ") ENGINE=MyISAMish;"},
		{"spaced clause untouched", ") ENGINE = MyISAM;", ") ENGINE = MyISAM;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := EngineName{}.Apply(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineName_Findings(t *testing.T) {
	doc := "CREATE TABLE a (id int) ENGINE=Aria;\n" +
		"CREATE TABLE b (id int) ENGINE=InnoDB;\n" +
		"CREATE TABLE c (id int) ENGINE=S3;\n"

	got, findings := EngineName{}.Apply(doc)
	require.Len(t, findings, 2)
	assert.NotContains(t, got, "Aria")
	assert.NotContains(t, got, "=S3")

	assert.Equal(t, Finding{Rule: "engine-name", Line: 1, Before: "ENGINE=Aria", After: "ENGINE=InnoDB"}, findings[0])
	assert.Equal(t, Finding{Rule: "engine-name", Line: 3, Before: "ENGINE=S3", After: "ENGINE=InnoDB"}, findings[1])
}
