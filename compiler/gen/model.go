package gen

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// Class is the target independent model of one generated class.
	// Emitters render it through their own templates or builders.
	Class struct {
		// Name of the class.
		Name string
		// Table name in the database.
		Table string
		// Namespace segments.
		Namespace []string
		// Target the native types were resolved for.
		Target Target
		// Properties in Context column order.
		Properties []*Property
	}

	// Property is one column of a Class with its resolved native type.
	Property struct {
		// Column is the column key.
		Column string
		// Suffix is the accessor name fragment (e.g. "UserEmail").
		Suffix string
		// Type is the resolved native type.
		Type *TypeInfo
		// ID, Auto and Nullable mirror the column metadata.
		ID, Auto, Nullable bool
	}
)

// NewClass resolves the native types of all columns of c for the target.
// It fails with a *TypeError if a column type is not supported.
func NewClass(c *Context, target Target) (*Class, error) {
	cls := &Class{
		Name:      c.Name,
		Table:     c.Table,
		Namespace: slices.Clone(c.Namespace),
		Target:    target,
	}
	for _, key := range c.Columns {
		col := c.Column[key]
		info, err := LookupType(target, col.Type, col.ID, col.Nullable)
		if err != nil {
			if terr, ok := err.(*TypeError); ok {
				terr.Entity, terr.Column = c.Name, key
			}
			return nil, err
		}
		cls.Properties = append(cls.Properties, &Property{
			Column:   key,
			Suffix:   c.Suffix[key],
			Type:     info,
			ID:       col.ID,
			Auto:     col.Auto,
			Nullable: col.Nullable,
		})
	}
	return cls, nil
}

// QualifiedName joins the namespace and class name with sep.
func (c *Class) QualifiedName(sep string) string {
	return strings.Join(append(slices.Clone(c.Namespace), c.Name), sep)
}

// Setters returns the properties that get a setter (all but auto columns).
func (c *Class) Setters() []*Property {
	var ps []*Property
	for _, p := range c.Properties {
		if !p.Auto {
			ps = append(ps, p)
		}
	}
	return ps
}

// IDs returns the id properties.
func (c *Class) IDs() []*Property {
	var ps []*Property
	for _, p := range c.Properties {
		if p.ID {
			ps = append(ps, p)
		}
	}
	return ps
}

// NonIDs returns the properties that are not ids.
func (c *Class) NonIDs() []*Property {
	var ps []*Property
	for _, p := range c.Properties {
		if !p.ID {
			ps = append(ps, p)
		}
	}
	return ps
}

// MappingOrder returns the properties ordered for mapping files: id
// columns first, then the rest, each group in case-insensitive order.
func (c *Class) MappingOrder() []*Property {
	return append(c.IDs(), c.NonIDs()...)
}

// HasKind reports whether any property has a native type of kind k.
func (c *Class) HasKind(k Kind) bool {
	for _, p := range c.Properties {
		if p.Type.Kind == k {
			return true
		}
	}
	return false
}

// Member returns the member name of the property for targets whose
// identifiers may not start with a digit.
func (p *Property) Member() string {
	return ExportedName(p.Suffix)
}

// MemberSet describes the member names a target declares on a class.
type MemberSet struct {
	// Fixed members every class of the target declares.
	Fixed []string
	// Of returns the members generated for one property.
	Of func(p *Property) []string
	// Fold compares names case-insensitively.
	Fold bool
}

// CheckMembers reports the first property whose generated members clash
// with a fixed member or with a member of another property. The error is
// an *IdentifierError scoped to the entity.
func (c *Class) CheckMembers(ms MemberSet) error {
	key := func(name string) string {
		if ms.Fold {
			return strings.ToLower(name)
		}
		return name
	}
	fixed := make(map[string]bool, len(ms.Fixed))
	for _, name := range ms.Fixed {
		fixed[key(name)] = true
	}
	owner := make(map[string]*Property)
	for _, p := range c.Properties {
		for _, name := range ms.Of(p) {
			k := key(name)
			if fixed[k] {
				return &IdentifierError{Entity: c.Name, Column: p.Column, Name: p.Column, Message: fmt.Sprintf("member %s collides with a generated %s member", name, c.Target)}
			}
			if q, ok := owner[k]; ok && q != p {
				return &IdentifierError{Entity: c.Name, Column: p.Column, Name: p.Column, Message: fmt.Sprintf("member %s collides with a member of column %q", name, q.Column)}
			}
			owner[k] = p
		}
	}
	return nil
}
