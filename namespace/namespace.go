// Package namespace implements the three-level logical path (spec.md §3/§6):
// database.schema.name resolving deterministically to an on-disk directory
// holding a JSON schema descriptor and a contiguous row file.
package namespace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

// Namespace is a resolved three-level path: database, schema, name.
type Namespace struct {
	Database string
	Schema   string
	Name     string
}

// Parse decodes the `ns("db.schema.name")` surface syntax of spec.md §6.
func Parse(text string) (Namespace, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return Namespace{}, &errs.Exact{Message: "namespace must have the form db.schema.name"}
	}
	for _, p := range parts {
		if p == "" {
			return Namespace{}, &errs.Exact{Message: "namespace segments must not be empty"}
		}
	}
	return Namespace{Database: parts[0], Schema: parts[1], Name: parts[2]}, nil
}

func (ns Namespace) String() string {
	return ns.Database + "." + ns.Schema + "." + ns.Name
}

// Dir resolves ns to its directory under home (spec.md §6:
// "<oxide_home>/<db>/<schema>/<name>").
func (ns Namespace) Dir(home string) string {
	return filepath.Join(home, ns.Database, ns.Schema, ns.Name)
}

// DataPath resolves the contiguous fixed-stride row file path.
func (ns Namespace) DataPath(home string) string {
	return filepath.Join(ns.Dir(home), "data")
}

// ConfigPath resolves the sibling JSON schema descriptor path.
func (ns Namespace) ConfigPath(home string) string {
	return filepath.Join(ns.Dir(home), "config.json")
}

// ColumnConfig is the on-disk JSON representation of a row.Column (spec.md
// §6: "name, type text, default, nullable").
type ColumnConfig struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Default  interface{} `json:"default,omitempty"`
	Nullable bool        `json:"nullable"`
}

// ObjectConfig is the sibling JSON schema descriptor persisted next to a
// table's row file (spec.md §6), hand-editable and consulted on open.
type ObjectConfig struct {
	Columns []ColumnConfig `json:"columns"`
}

// BuildObjectConfig projects row columns into their JSON-serializable form.
func BuildObjectConfig(columns []row.Column) ObjectConfig {
	cfg := ObjectConfig{Columns: make([]ColumnConfig, len(columns))}
	for i, c := range columns {
		var def interface{}
		if c.Default.Kind != value.KindNull {
			def = c.Default.Unwrap()
		}
		cfg.Columns[i] = ColumnConfig{
			Name:     c.Name,
			Type:     c.Type.Render(),
			Default:  def,
			Nullable: c.Nullable,
		}
	}
	return cfg
}

// ToRowColumns reconstructs row.Column descriptors from the JSON descriptor,
// parsing each column's type text via types.Parse (spec.md §6).
func (cfg ObjectConfig) ToRowColumns() ([]row.Column, error) {
	out := make([]row.Column, len(cfg.Columns))
	for i, cc := range cfg.Columns {
		dt, err := types.Parse(cc.Type)
		if err != nil {
			return nil, err
		}
		out[i] = row.Column{Name: cc.Name, Type: dt, Nullable: cc.Nullable}
	}
	return out, nil
}

// Save persists cfg as the sibling JSON schema descriptor for ns, creating
// ns's directory if needed (spec.md §3 lifecycle: "a Table is created by
// persisting its ObjectConfig").
func (cfg ObjectConfig) Save(home string, ns Namespace) error {
	if err := os.MkdirAll(ns.Dir(home), 0o755); err != nil {
		return errs.Wrap(err, "creating namespace directory")
	}
	buf, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errs.Wrap(err, "encoding schema descriptor")
	}
	if err := os.WriteFile(ns.ConfigPath(home), buf, 0o644); err != nil {
		return errs.Wrap(err, "writing schema descriptor")
	}
	return nil
}

// Load reads and decodes the sibling JSON schema descriptor for ns.
func Load(home string, ns Namespace) (ObjectConfig, error) {
	buf, err := os.ReadFile(ns.ConfigPath(home))
	if err != nil {
		return ObjectConfig{}, errs.Wrap(err, "reading schema descriptor")
	}
	var cfg ObjectConfig
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return ObjectConfig{}, errs.Wrap(err, "decoding schema descriptor")
	}
	return cfg, nil
}

// Exists reports whether ns has already been created under home.
func Exists(home string, ns Namespace) bool {
	_, err := os.Stat(ns.ConfigPath(home))
	return err == nil
}

// Touch creates ns's empty row file (spec.md §3 lifecycle: "...and touching
// an empty row file").
func Touch(home string, ns Namespace) error {
	if err := os.MkdirAll(ns.Dir(home), 0o755); err != nil {
		return errs.Wrap(err, "creating namespace directory")
	}
	f, err := os.OpenFile(ns.DataPath(home), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return errs.Wrap(err, "creating row file")
	}
	return f.Close()
}
