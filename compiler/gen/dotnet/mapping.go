package dotnet

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/syssam/ormgen/compiler/gen"
)

// hbmAccess maps members through their backing fields so loading an
// entity does not run the generated hooks.
const hbmAccess = "field.camelcase-underscore"

type (
	hbmMapping struct {
		XMLName   xml.Name `xml:"urn:nhibernate-mapping-2.2 hibernate-mapping"`
		Namespace string   `xml:"namespace,attr,omitempty"`
		Class     hbmClass `xml:"class"`
	}
	hbmClass struct {
		Name        string          `xml:"name,attr"`
		Table       string          `xml:"table,attr"`
		ID          *hbmID          `xml:"id,omitempty"`
		CompositeID *hbmCompositeID `xml:"composite-id,omitempty"`
		Properties  []hbmProperty   `xml:"property"`
	}
	hbmID struct {
		Name      string       `xml:"name,attr"`
		Column    string       `xml:"column,attr"`
		Type      string       `xml:"type,attr"`
		Access    string       `xml:"access,attr"`
		Generator hbmGenerator `xml:"generator"`
	}
	hbmGenerator struct {
		Class string `xml:"class,attr"`
	}
	hbmCompositeID struct {
		Keys []hbmKey `xml:"key-property"`
	}
	hbmKey struct {
		Name   string `xml:"name,attr"`
		Column string `xml:"column,attr"`
		Type   string `xml:"type,attr"`
		Access string `xml:"access,attr"`
	}
	hbmProperty struct {
		Name      string `xml:"name,attr"`
		Column    string `xml:"column,attr"`
		Type      string `xml:"type,attr"`
		Access    string `xml:"access,attr"`
		NotNull   bool   `xml:"not-null,attr,omitempty"`
		Insert    string `xml:"insert,attr,omitempty"`
		Update    string `xml:"update,attr,omitempty"`
		Generated string `xml:"generated,attr,omitempty"`
	}
)

// hbmTypes maps canonical tags to NHibernate type names.
var hbmTypes = map[string]string{
	"string":   "String",
	"int16":    "Int16",
	"int32":    "Int32",
	"int64":    "Int64",
	"float":    "Double",
	"decimal":  "Decimal",
	"bool":     "Boolean",
	"datetime": "DateTime",
	"json":     "StringClob",
}

// Mapping renders the hbm.xml mapping document of cls. Id columns are
// listed first, then all other columns in case-insensitive order.
func Mapping(cls *gen.Class) ([]byte, error) {
	d := &classData{Class: cls, NHibernate: true}
	m := hbmMapping{
		Namespace: strings.Join(cls.Namespace, "."),
		Class:     hbmClass{Name: cls.Name, Table: cls.Table},
	}
	switch ids := cls.IDs(); len(ids) {
	case 0:
	case 1:
		m.Class.ID = &hbmID{
			Name:      d.Prop(ids[0]),
			Column:    ids[0].Column,
			Type:      hbmTypes[ids[0].Type.Tag],
			Access:    hbmAccess,
			Generator: hbmGenerator{Class: generator(ids[0])},
		}
	default:
		m.Class.CompositeID = &hbmCompositeID{}
		for _, p := range ids {
			m.Class.CompositeID.Keys = append(m.Class.CompositeID.Keys, hbmKey{
				Name:   d.Prop(p),
				Column: p.Column,
				Type:   hbmTypes[p.Type.Tag],
				Access: hbmAccess,
			})
		}
	}
	for _, p := range cls.NonIDs() {
		hp := hbmProperty{
			Name:    d.Prop(p),
			Column:  p.Column,
			Type:    hbmTypes[p.Type.Tag],
			Access:  hbmAccess,
			NotNull: !p.Nullable,
		}
		if p.Auto {
			hp.Insert, hp.Update, hp.Generated = "false", "false", "insert"
		}
		m.Class.Properties = append(m.Class.Properties, hp)
	}
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<!-- " + gen.Header + " -->\n")
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("ormgen: encode mapping of %s: %w", cls.Name, err)
	}
	b.WriteString("\n")
	return b.Bytes(), nil
}
