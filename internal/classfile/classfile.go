package classfile

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// Magic is the first word of every class file.
const Magic = 0xCAFEBABE

// Access flags shared by classes, fields and methods.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020
	AccSynchronized = 0x0020
	AccVolatile     = 0x0040
	AccBridge       = 0x0040
	AccTransient    = 0x0080
	AccVarargs      = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
)

// Well-known attribute and member names.
const (
	AttrCode                   = "Code"
	AttrStackMapTable          = "StackMapTable"
	AttrLineNumberTable        = "LineNumberTable"
	AttrLocalVariableTable     = "LocalVariableTable"
	AttrLocalVariableTypeTable = "LocalVariableTypeTable"

	ConstructorName = "<init>"
)

// Attribute is an undecoded attribute. Data excludes the name and length header.
type Attribute struct {
	NameIndex uint16
	Data      []byte
}

// Member is a field_info or method_info structure.
type Member struct {
	Access          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []*Attribute
}

// File is a decoded class file.
type File struct {
	Minor, Major uint16
	Pool         *Pool
	Access       uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []*Member
	Methods      []*Member
	Attributes   []*Attribute
}

// Parse decodes a class file. The result shares no memory with data.
func Parse(data []byte) (*File, error) {
	r := &reader{buf: data}
	if magic := r.u4(); r.err == nil && magic != Magic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrMalformed, magic)
	}
	f := &File{Pool: NewPool()}
	f.Minor = r.u2()
	f.Major = r.u2()
	f.Pool.read(r)
	f.Access = r.u2()
	f.ThisClass = r.u2()
	f.SuperClass = r.u2()
	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		f.Interfaces = append(f.Interfaces, r.u2())
	}
	f.Fields = readMembers(r)
	f.Methods = readMembers(r)
	f.Attributes = readAttributes(r)
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)-r.off)
	}
	if _, err := f.Name(); err != nil {
		return nil, err
	}
	if f.SuperClass != 0 {
		if _, err := f.Pool.ClassName(f.SuperClass); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func readMembers(r *reader) []*Member {
	n := int(r.u2())
	var members []*Member
	for i := 0; i < n && r.err == nil; i++ {
		m := &Member{Access: r.u2(), NameIndex: r.u2(), DescriptorIndex: r.u2()}
		m.Attributes = readAttributes(r)
		members = append(members, m)
	}
	return members
}

func readAttributes(r *reader) []*Attribute {
	n := int(r.u2())
	var attrs []*Attribute
	for i := 0; i < n && r.err == nil; i++ {
		a := &Attribute{NameIndex: r.u2()}
		a.Data = r.bytes(int(r.u4()))
		attrs = append(attrs, a)
	}
	return attrs
}

// Bytes serializes the class file into a new slice.
func (f *File) Bytes() ([]byte, error) {
	if err := f.Pool.Err(); err != nil {
		return nil, err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	b := buf.B
	b = appendU4(b, Magic)
	b = appendU2(b, f.Minor)
	b = appendU2(b, f.Major)
	b = f.Pool.appendTo(b)
	b = appendU2(b, f.Access)
	b = appendU2(b, f.ThisClass)
	b = appendU2(b, f.SuperClass)
	b = appendU2(b, uint16(len(f.Interfaces)))
	for _, i := range f.Interfaces {
		b = appendU2(b, i)
	}
	b = appendMembers(b, f.Fields)
	b = appendMembers(b, f.Methods)
	b = appendAttributes(b, f.Attributes)
	buf.B = b

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func appendMembers(b []byte, members []*Member) []byte {
	b = appendU2(b, uint16(len(members)))
	for _, m := range members {
		b = appendU2(b, m.Access)
		b = appendU2(b, m.NameIndex)
		b = appendU2(b, m.DescriptorIndex)
		b = appendAttributes(b, m.Attributes)
	}
	return b
}

func appendAttributes(b []byte, attrs []*Attribute) []byte {
	b = appendU2(b, uint16(len(attrs)))
	for _, a := range attrs {
		b = appendU2(b, a.NameIndex)
		b = appendU4(b, uint32(len(a.Data)))
		b = append(b, a.Data...)
	}
	return b
}

// Name returns the internal name of the class.
func (f *File) Name() (string, error) {
	return f.Pool.ClassName(f.ThisClass)
}

// SuperName returns the internal name of the superclass, or "" for java/lang/Object.
func (f *File) SuperName() (string, error) {
	if f.SuperClass == 0 {
		return "", nil
	}
	return f.Pool.ClassName(f.SuperClass)
}

// MemberInfo returns the name and descriptor of a field or method.
func (f *File) MemberInfo(m *Member) (name, desc string, err error) {
	if name, err = f.Pool.UTF8(m.NameIndex); err != nil {
		return "", "", err
	}
	if desc, err = f.Pool.UTF8(m.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// FindMethod returns the index of the method with the given name and
// descriptor, or -1.
func (f *File) FindMethod(name, desc string) int {
	for i, m := range f.Methods {
		n, d, err := f.MemberInfo(m)
		if err == nil && n == name && d == desc {
			return i
		}
	}
	return -1
}

// PutMethod replaces the method with the same name and descriptor, or appends
// a new one when none exists.
func (f *File) PutMethod(access uint16, name, desc string, code *Code) error {
	data, err := code.Encode()
	if err != nil {
		return err
	}
	m := &Member{
		Access:          access,
		NameIndex:       f.Pool.AddUTF8(name),
		DescriptorIndex: f.Pool.AddUTF8(desc),
		Attributes: []*Attribute{
			{NameIndex: f.Pool.AddUTF8(AttrCode), Data: data},
		},
	}
	if err := f.Pool.Err(); err != nil {
		return err
	}
	if i := f.FindMethod(name, desc); i >= 0 {
		f.Methods[i] = m
		return nil
	}
	f.Methods = append(f.Methods, m)
	return nil
}

// FindAttribute returns the first attribute with the given name, or nil.
func (f *File) FindAttribute(attrs []*Attribute, name string) *Attribute {
	return findAttribute(f.Pool, attrs, name)
}

func findAttribute(pool *Pool, attrs []*Attribute, name string) *Attribute {
	for _, a := range attrs {
		if n, err := pool.UTF8(a.NameIndex); err == nil && n == name {
			return a
		}
	}
	return nil
}

// Code decodes the Code attribute of a method. It returns nil, nil for
// abstract and native methods.
func (f *File) Code(m *Member) (*Code, error) {
	a := f.FindAttribute(m.Attributes, AttrCode)
	if a == nil {
		return nil, nil
	}
	return ParseCode(a.Data)
}

// SetCode re-encodes c into the Code attribute of m.
func (f *File) SetCode(m *Member, c *Code) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if a := f.FindAttribute(m.Attributes, AttrCode); a != nil {
		a.Data = data
		return nil
	}
	m.Attributes = append(m.Attributes, &Attribute{NameIndex: f.Pool.AddUTF8(AttrCode), Data: data})
	return f.Pool.Err()
}

// NewFile returns an empty public class with the given internal names, using
// class file version 52 (Java 8).
func NewFile(name, super string) *File {
	f := &File{Major: 52, Pool: NewPool(), Access: AccPublic | AccSuper}
	f.ThisClass = f.Pool.AddClass(name)
	if super != "" {
		f.SuperClass = f.Pool.AddClass(super)
	}
	return f
}

// AddField appends a field declaration.
func (f *File) AddField(access uint16, name, desc string) {
	f.Fields = append(f.Fields, &Member{
		Access:          access,
		NameIndex:       f.Pool.AddUTF8(name),
		DescriptorIndex: f.Pool.AddUTF8(desc),
	})
}
