package classfile

import (
	"fmt"
	"math"
)

// Tag identifies the kind of a constant pool entry.
type Tag uint8

const (
	TagUTF8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

func (t Tag) String() string {
	switch t {
	case TagUTF8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagDynamic:
		return "Dynamic"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	case TagModule:
		return "Module"
	case TagPackage:
		return "Package"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Constant is one constant pool entry. Which fields are meaningful depends
// on Tag: Text for Utf8, Bits for numeric constants, A and B for references
// (Class/String/MethodType/Module/Package use A only), Kind for method handles.
type Constant struct {
	Tag  Tag
	Text string
	Bits uint64
	A, B uint16
	Kind uint8

	raw []byte
}

// MemberRef is a resolved Fieldref, Methodref or InterfaceMethodref.
type MemberRef struct {
	Owner      string
	Name       string
	Descriptor string
}

func (m MemberRef) String() string {
	return m.Owner + "." + m.Name + m.Descriptor
}

// Pool is a class file constant pool. Index 0 is unused and the slot after
// every Long or Double holds a placeholder with a zero Tag.
type Pool struct {
	entries []Constant
	index   map[string]uint16
	err     error
}

// NewPool returns an empty constant pool.
func NewPool() *Pool {
	return &Pool{
		entries: make([]Constant, 1),
		index:   make(map[string]uint16),
	}
}

// Len returns the constant_pool_count written to the class file.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Err returns the first error raised while adding constants.
func (p *Pool) Err() error {
	return p.err
}

// Get returns the entry at index i.
func (p *Pool) Get(i uint16) (Constant, error) {
	if i == 0 || int(i) >= len(p.entries) || p.entries[i].Tag == 0 {
		return Constant{}, fmt.Errorf("%w: bad constant pool index %d", ErrMalformed, i)
	}
	return p.entries[i], nil
}

func (p *Pool) expect(i uint16, tag Tag) (Constant, error) {
	c, err := p.Get(i)
	if err != nil {
		return c, err
	}
	if c.Tag != tag {
		return c, fmt.Errorf("%w: constant %d is %s, want %s", ErrMalformed, i, c.Tag, tag)
	}
	return c, nil
}

// UTF8 returns the text of the Utf8 entry at index i.
func (p *Pool) UTF8(i uint16) (string, error) {
	c, err := p.expect(i, TagUTF8)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// ClassName returns the internal name referenced by the Class entry at index i.
func (p *Pool) ClassName(i uint16) (string, error) {
	c, err := p.expect(i, TagClass)
	if err != nil {
		return "", err
	}
	return p.UTF8(c.A)
}

// NameAndType returns the name and descriptor of the NameAndType entry at index i.
func (p *Pool) NameAndType(i uint16) (string, string, error) {
	c, err := p.expect(i, TagNameAndType)
	if err != nil {
		return "", "", err
	}
	name, err := p.UTF8(c.A)
	if err != nil {
		return "", "", err
	}
	desc, err := p.UTF8(c.B)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// MemberRef resolves a Fieldref, Methodref or InterfaceMethodref entry.
func (p *Pool) MemberRef(i uint16) (MemberRef, error) {
	c, err := p.Get(i)
	if err != nil {
		return MemberRef{}, err
	}
	switch c.Tag {
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
	default:
		return MemberRef{}, fmt.Errorf("%w: constant %d is %s, want a member reference", ErrMalformed, i, c.Tag)
	}
	owner, err := p.ClassName(c.A)
	if err != nil {
		return MemberRef{}, err
	}
	name, desc, err := p.NameAndType(c.B)
	if err != nil {
		return MemberRef{}, err
	}
	return MemberRef{Owner: owner, Name: name, Descriptor: desc}, nil
}

// AddUTF8 interns a Utf8 entry.
func (p *Pool) AddUTF8(s string) uint16 {
	raw := encodeMUTF8(s)
	if len(raw) > math.MaxUint16 {
		if p.err == nil {
			p.err = fmt.Errorf("%w: utf8 constant of %d bytes", ErrPoolOverflow, len(raw))
		}
		return 0
	}
	return p.add(Constant{Tag: TagUTF8, Text: s, raw: raw})
}

// AddClass interns a Class entry for an internal name such as java/lang/String.
func (p *Pool) AddClass(internalName string) uint16 {
	return p.add(Constant{Tag: TagClass, A: p.AddUTF8(internalName)})
}

// AddString interns a String entry.
func (p *Pool) AddString(s string) uint16 {
	return p.add(Constant{Tag: TagString, A: p.AddUTF8(s)})
}

// AddInteger interns an Integer entry.
func (p *Pool) AddInteger(v int32) uint16 {
	return p.add(Constant{Tag: TagInteger, Bits: uint64(uint32(v))})
}

// AddFloat interns a Float entry.
func (p *Pool) AddFloat(v float32) uint16 {
	return p.add(Constant{Tag: TagFloat, Bits: uint64(math.Float32bits(v))})
}

// AddLong interns a Long entry.
func (p *Pool) AddLong(v int64) uint16 {
	return p.add(Constant{Tag: TagLong, Bits: uint64(v)})
}

// AddDouble interns a Double entry.
func (p *Pool) AddDouble(v float64) uint16 {
	return p.add(Constant{Tag: TagDouble, Bits: math.Float64bits(v)})
}

// AddNameAndType interns a NameAndType entry.
func (p *Pool) AddNameAndType(name, desc string) uint16 {
	return p.add(Constant{Tag: TagNameAndType, A: p.AddUTF8(name), B: p.AddUTF8(desc)})
}

// AddFieldref interns a Fieldref entry.
func (p *Pool) AddFieldref(owner, name, desc string) uint16 {
	return p.addRef(TagFieldref, owner, name, desc)
}

// AddMethodref interns a Methodref entry.
func (p *Pool) AddMethodref(owner, name, desc string) uint16 {
	return p.addRef(TagMethodref, owner, name, desc)
}

// AddInterfaceMethodref interns an InterfaceMethodref entry.
func (p *Pool) AddInterfaceMethodref(owner, name, desc string) uint16 {
	return p.addRef(TagInterfaceMethodref, owner, name, desc)
}

func (p *Pool) addRef(tag Tag, owner, name, desc string) uint16 {
	class := p.AddClass(owner)
	nat := p.AddNameAndType(name, desc)
	return p.add(Constant{Tag: tag, A: class, B: nat})
}

func (p *Pool) add(c Constant) uint16 {
	key := constantKey(c)
	if i, ok := p.index[key]; ok {
		return i
	}
	if p.err != nil {
		return 0
	}
	size := 1
	if c.Tag == TagLong || c.Tag == TagDouble {
		size = 2
	}
	if len(p.entries)+size > math.MaxUint16 {
		p.err = fmt.Errorf("%w: cannot add %s constant", ErrPoolOverflow, c.Tag)
		return 0
	}
	i := uint16(len(p.entries))
	p.entries = append(p.entries, c)
	if size == 2 {
		p.entries = append(p.entries, Constant{})
	}
	p.index[key] = i
	return i
}

func constantKey(c Constant) string {
	switch c.Tag {
	case TagUTF8:
		return "u" + c.Text
	case TagInteger, TagFloat, TagLong, TagDouble:
		return fmt.Sprintf("%d#%x", c.Tag, c.Bits)
	default:
		return fmt.Sprintf("%d#%d#%d#%d", c.Tag, c.Kind, c.A, c.B)
	}
}

func (p *Pool) read(r *reader) {
	count := int(r.u2())
	if r.err != nil {
		return
	}
	if count == 0 {
		r.fail("constant pool count is zero")
		return
	}
	p.entries = make([]Constant, 1, count)
	for len(p.entries) < count && r.err == nil {
		c := Constant{Tag: Tag(r.u1())}
		switch c.Tag {
		case TagUTF8:
			c.raw = r.bytes(int(r.u2()))
			if r.err != nil {
				return
			}
			text, err := decodeMUTF8(c.raw)
			if err != nil {
				r.err = err
				return
			}
			c.Text = text
		case TagInteger, TagFloat:
			c.Bits = uint64(r.u4())
		case TagLong, TagDouble:
			c.Bits = r.u8()
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			c.A = r.u2()
		case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType, TagDynamic, TagInvokeDynamic:
			c.A = r.u2()
			c.B = r.u2()
		case TagMethodHandle:
			c.Kind = r.u1()
			c.A = r.u2()
		default:
			r.fail("unknown constant tag %d at index %d", c.Tag, len(p.entries))
			return
		}
		i := uint16(len(p.entries))
		p.entries = append(p.entries, c)
		if c.Tag == TagLong || c.Tag == TagDouble {
			p.entries = append(p.entries, Constant{})
		}
		if _, ok := p.index[constantKey(c)]; !ok {
			p.index[constantKey(c)] = i
		}
	}
	if len(p.entries) != count {
		r.fail("constant pool overruns its count %d", count)
	}
}

func (p *Pool) appendTo(b []byte) []byte {
	b = appendU2(b, uint16(len(p.entries)))
	for _, c := range p.entries[1:] {
		if c.Tag == 0 {
			continue
		}
		b = appendU1(b, uint8(c.Tag))
		switch c.Tag {
		case TagUTF8:
			b = appendU2(b, uint16(len(c.raw)))
			b = append(b, c.raw...)
		case TagInteger, TagFloat:
			b = appendU4(b, uint32(c.Bits))
		case TagLong, TagDouble:
			b = appendU8(b, c.Bits)
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			b = appendU2(b, c.A)
		case TagMethodHandle:
			b = appendU1(b, c.Kind)
			b = appendU2(b, c.A)
		default:
			b = appendU2(b, c.A)
			b = appendU2(b, c.B)
		}
	}
	return b
}
