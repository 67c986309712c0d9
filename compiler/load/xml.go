package load

import (
	"encoding/xml"
	"strings"
)

type (
	xmlSchema struct {
		XMLName   xml.Name    `xml:"schema"`
		Namespace string      `xml:"namespace,attr"`
		Entities  []xmlEntity `xml:"entity"`
	}
	xmlEntity struct {
		Name    string      `xml:"name,attr"`
		Table   string      `xml:"table,attr"`
		Columns []xmlColumn `xml:"column"`
	}
	// xmlColumn is a long-form column when any attribute besides the name is
	// present, and a shorthand column whose character data is the type otherwise.
	xmlColumn struct {
		Name string  `xml:"name,attr"`
		Type *string `xml:"type,attr"`
		ID   *bool   `xml:"id,attr"`
		Auto *bool   `xml:"auto,attr"`
		Null *bool   `xml:"null,attr"`
		Text string  `xml:",chardata"`
	}
)

func parseXML(data []byte) (*Schema, error) {
	var doc xmlSchema
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	s := &Schema{Namespace: doc.Namespace}
	for _, xe := range doc.Entities {
		e := &Entity{Key: xe.Name, Table: xe.Table}
		for _, xc := range xe.Columns {
			e.Columns = append(e.Columns, ColumnEntry{Key: xc.Name, Column: xc.column()})
		}
		s.put(e)
	}
	return s, nil
}

func (x xmlColumn) column() *Column {
	if x.Type == nil && x.ID == nil && x.Auto == nil && x.Null == nil {
		return &Column{Type: strings.TrimSpace(x.Text), Short: true}
	}
	c := &Column{Type: strings.TrimSpace(x.Text)}
	if x.Type != nil {
		c.Type = *x.Type
	}
	c.ID = x.ID != nil && *x.ID
	c.Auto = x.Auto != nil && *x.Auto
	c.Null = x.Null != nil && *x.Null
	return c
}
