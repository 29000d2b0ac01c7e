package typeinfo

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
)

type hintsYAML struct {
	Classes []classYAML `yaml:"classes"`
}

type classYAML struct {
	Name          string       `yaml:"name"`
	Super         string       `yaml:"super"`
	Interfaces    []string     `yaml:"interfaces"`
	Interface     bool         `yaml:"interface"`
	Abstract      bool         `yaml:"abstract"`
	NoConstructor bool         `yaml:"noConstructor"`
	Fields        []memberYAML `yaml:"fields"`
	Methods       []memberYAML `yaml:"methods"`
	Setters       []string     `yaml:"setters"`
	MinimumSize   []int32      `yaml:"minimumSize"`
	PreferredSize []int32      `yaml:"preferredSize"`
}

type memberYAML struct {
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor"`
	Static     bool   `yaml:"static"`
	Final      bool   `yaml:"final"`
}

// LoadHintsFile reads a type hints file. See LoadHints.
func LoadHintsFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadHints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadHints reads class descriptions for classes that are neither built in
// nor on the class path, typically third-party components:
//
//	classes:
//	  - name: com.acme.Gauge
//	    super: javax.swing.JComponent
//	    setters: ["value:I", "label:Ljava/lang/String;"]
//	    preferredSize: [120, 40]
func LoadHints(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc hintsYAML
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}
	t := &Table{}
	for _, c := range doc.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("type hint without a name")
		}
		s := classDecl{
			name:       c.Name,
			super:      c.Super,
			interfaces: c.Interfaces,
			abstract:   c.Abstract,
			iface:      c.Interface,
			noCtor:     c.NoConstructor,
			setters:    c.Setters,
		}
		if s.super == "" && !s.iface && s.name != "java.lang.Object" {
			s.super = "java.lang.Object"
		}
		for _, m := range c.Methods {
			s.methods = append(s.methods, toMember(m, classfile.AccPublic))
		}
		var err error
		if s.min, err = hintSize(c.MinimumSize); err != nil {
			return nil, fmt.Errorf("%s: minimumSize: %w", c.Name, err)
		}
		if s.pref, err = hintSize(c.PreferredSize); err != nil {
			return nil, fmt.Errorf("%s: preferredSize: %w", c.Name, err)
		}
		info := s.info()
		for _, f := range c.Fields {
			info.Fields = append(info.Fields, toMember(f, 0))
		}
		t.Add(info)
	}
	return t, nil
}

func toMember(m memberYAML, access uint16) Member {
	if m.Static {
		access |= classfile.AccStatic
	}
	if m.Final {
		access |= classfile.AccFinal
	}
	return Member{Name: m.Name, Descriptor: m.Descriptor, Access: access}
}

func hintSize(v []int32) (form.Dimension, error) {
	switch len(v) {
	case 0:
		return form.Dimension{}, nil
	case 2:
		return form.Dimension{Width: v[0], Height: v[1]}, nil
	default:
		return form.Dimension{}, fmt.Errorf("want [width, height], got %d numbers", len(v))
	}
}
