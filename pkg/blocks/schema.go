package blocks

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Control port ids shared across kinds. Data port ids (STEPS, NUM1, ...) are
// declared per kind in the catalog and matter only to the normalizer and the
// builder, so they stay plain strings.
const (
	PortExec         = "EXEC"
	PortThen         = "THEN"
	PortSubstack     = "SUBSTACK"
	PortSubstackIf   = "SUBSTACK_IF"
	PortSubstackElse = "SUBSTACK_ELSE"
	PortResult       = "RESULT"
)

// ErrUnknownKind indicates a block kind that is not registered in the catalog.
var ErrUnknownKind = errors.New("unknown block kind")

// PortDef declares one port or field on a block kind.
type PortDef struct {
	ID   string `json:"id"             validate:"required"`
	Type string `json:"type,omitempty"`
}

// Schema describes the port surface of one block kind. Fields behave like
// input ports during normalization but must resolve to literals at build time.
type Schema struct {
	InPorts  []PortDef `json:"inPorts"`
	Fields   []PortDef `json:"fields"`
	OutPorts []PortDef `json:"outPorts"`
}

// HasOutPort reports whether id names an output port of the kind.
func (s Schema) HasOutPort(id string) bool {
	for _, p := range s.OutPorts {
		if p.ID == id {
			return true
		}
	}

	return false
}

// HasInPort reports whether id names an input port or a field of the kind.
func (s Schema) HasInPort(id string) bool {
	for _, p := range s.InPorts {
		if p.ID == id {
			return true
		}
	}

	for _, f := range s.Fields {
		if f.ID == id {
			return true
		}
	}

	return false
}

// BodyPorts returns the substack output ports that mark the kind as compound.
func (s Schema) BodyPorts() []string {
	var ports []string

	for _, p := range s.OutPorts {
		if p.ID == PortSubstack || p.ID == PortSubstackIf || p.ID == PortSubstackElse {
			ports = append(ports, p.ID)
		}
	}

	return ports
}

// IsCompound reports whether the kind owns at least one nested body.
func (s Schema) IsCompound() bool {
	return len(s.BodyPorts()) > 0
}

// HasNext reports whether the kind exposes the sequential THEN output.
func (s Schema) HasNext() bool {
	return s.HasOutPort(PortThen)
}

// Catalog maps block kinds to their schemas. It is always passed explicitly
// into the normalizer and the builder, never resolved from process state.
type Catalog map[Kind]Schema

// SchemaOf returns the schema registered for kind.
func (c Catalog) SchemaOf(kind Kind) (Schema, error) {
	schema, ok := c[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return schema, nil
}

// Has reports whether kind is registered. Constant is implicit and never
// appears in the catalog.
func (c Catalog) Has(kind Kind) bool {
	_, ok := c[kind]

	return ok
}

//go:embed catalog.json
var defaultCatalogJSON []byte

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     Catalog
)

// DefaultCatalog returns the reference catalog shipped with the module.
func DefaultCatalog() Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := ParseCatalog(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}

		defaultCatalog = catalog
	})

	return defaultCatalog
}

// LoadCatalog reads and validates a catalog document from r.
func LoadCatalog(r io.Reader) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes a catalog document and validates every entry.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	for kind, schema := range catalog {
		if kind == KindConstant {
			return nil, fmt.Errorf("catalog must not declare the implicit %s kind", KindConstant)
		}

		for _, port := range [][]PortDef{schema.InPorts, schema.Fields, schema.OutPorts} {
			for _, def := range port {
				if err := validate.Struct(def); err != nil {
					return nil, fmt.Errorf("invalid port definition on kind %s: %w", kind, err)
				}
			}
		}
	}

	return catalog, nil
}
