// Package rdata decodes the RData workspace format written by R's save()
// in version 2 (the "RDX2" XDR layout, the default for save(..., version = 2)
// and the only version R emitted before 3.5). Only the subset needed to
// recover tabular bindings is implemented: atomic vectors, factors, and
// data.frames. Deserialization never touches ambient state; the caller
// receives the bindings as a plain map.
package rdata

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Frame is a decoded data.frame: column-major cells parallel to Columns.
type Frame struct {
	Columns []string
	Data    [][]any
}

// NumRows returns the length of the first column, or 0 for an empty frame.
func (f *Frame) NumRows() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// SEXP type codes from the R serialization format.
const (
	sexpNil      = 254
	sexpRef      = 255
	sexpSymbol   = 1
	sexpPairlist = 2
	sexpChar     = 9
	sexpLogical  = 10
	sexpInteger  = 13
	sexpReal     = 14
	sexpString   = 16
	sexpVector   = 19
)

const (
	flagHasAttr = 1 << 9
	flagHasTag  = 1 << 10
)

// naInteger is INT_MIN, the wire encoding of NA for logical and integer
// vectors. NA_real_ is a quiet NaN with a fixed low-word payload.
const naInteger = -2147483648

const naRealBits = 0x7FF00000000007A2

var errNil = errors.New("rdata: nil value")

type object struct {
	value any
	attrs map[string]*object
}

func (o *object) attr(name string) *object {
	if o == nil || o.attrs == nil {
		return nil
	}
	return o.attrs[name]
}

func (o *object) hasClass(name string) bool {
	class := o.attr("class")
	if class == nil {
		return false
	}
	cells, ok := class.value.([]any)
	if !ok {
		return false
	}
	for _, cell := range cells {
		if cell == name {
			return true
		}
	}
	return false
}

// Decode reads an RData stream, transparently unwrapping gzip, and returns
// the file's top-level bindings keyed by name. Data.frame bindings decode
// to *Frame, atomic vectors and factors to []any; anything else is kept as
// nil so the binding name still appears in the result.
func Decode(r io.Reader) (map[string]any, error) {
	buffered := bufio.NewReader(r)

	magic, err := buffered.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("read rdata magic: %w", err)
	}
	var stream io.Reader = buffered
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("open rdata gzip stream: %w", err)
		}
		defer gz.Close()
		stream = gz
	}

	d := &decoder{r: bufio.NewReader(stream)}
	if err := d.readHeader(); err != nil {
		return nil, err
	}

	bindings, err := d.readBindings()
	if err != nil {
		return nil, err
	}

	result := make(map[string]any, len(bindings))
	for _, b := range bindings {
		result[b.name] = convert(b.obj)
	}
	return result, nil
}

type binding struct {
	name string
	obj  *object
}

type decoder struct {
	r *bufio.Reader
	// Symbols are written once and back-referenced afterwards.
	refs []string
}

func (d *decoder) readHeader() error {
	header := make([]byte, 5)
	if _, err := io.ReadFull(d.r, header); err != nil {
		return fmt.Errorf("read rdata header: %w", err)
	}
	if string(header) != "RDX2\n" {
		return fmt.Errorf("unsupported rdata signature %q (only version-2 RDX2 files are readable)", string(header))
	}

	format := make([]byte, 2)
	if _, err := io.ReadFull(d.r, format); err != nil {
		return fmt.Errorf("read rdata format marker: %w", err)
	}
	if string(format) != "X\n" {
		return fmt.Errorf("unsupported rdata serialization format %q (expected XDR)", string(format))
	}

	// Serialization version, writer version, minimum reader version.
	for i := 0; i < 3; i++ {
		if _, err := d.readInt(); err != nil {
			return fmt.Errorf("read rdata version header: %w", err)
		}
	}
	return nil
}

// readBindings walks the top-level pairlist save() emits: one tagged node
// per saved variable, terminated by the nil value.
func (d *decoder) readBindings() ([]binding, error) {
	bindings := make([]binding, 0, 4)
	for {
		flags, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read rdata binding flags: %w", err)
		}
		sexpType := flags & 0xff
		if sexpType == sexpNil {
			return bindings, nil
		}
		if sexpType != sexpPairlist {
			return nil, fmt.Errorf("unexpected top-level sexp type %d in rdata stream", sexpType)
		}

		if flags&flagHasAttr != 0 {
			if _, err := d.readItem(); err != nil && !errors.Is(err, errNil) {
				return nil, err
			}
		}
		name := ""
		if flags&flagHasTag != 0 {
			tag, err := d.readItem()
			if err != nil {
				return nil, err
			}
			tagName, ok := tag.value.(string)
			if !ok {
				return nil, fmt.Errorf("rdata binding tag is not a symbol")
			}
			name = tagName
		}
		value, err := d.readItem()
		if err != nil && !errors.Is(err, errNil) {
			return nil, err
		}
		bindings = append(bindings, binding{name: name, obj: value})
	}
}

func (d *decoder) readItem() (*object, error) {
	flags, err := d.readInt()
	if err != nil {
		return nil, fmt.Errorf("read sexp flags: %w", err)
	}
	return d.readItemFlags(flags)
}

func (d *decoder) readItemFlags(flags int32) (*object, error) {
	sexpType := flags & 0xff
	switch sexpType {
	case sexpNil:
		return nil, errNil

	case sexpRef:
		index := flags >> 8
		if index == 0 {
			i, err := d.readInt()
			if err != nil {
				return nil, fmt.Errorf("read sexp reference index: %w", err)
			}
			index = i
		}
		if index < 1 || int(index) > len(d.refs) {
			return nil, fmt.Errorf("sexp reference %d out of range", index)
		}
		return &object{value: d.refs[index-1]}, nil

	case sexpSymbol:
		name, err := d.readItem()
		if err != nil {
			return nil, err
		}
		text, ok := name.value.(string)
		if !ok {
			return nil, fmt.Errorf("symbol name is not a character value")
		}
		d.refs = append(d.refs, text)
		return &object{value: text}, nil

	case sexpChar:
		length, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read charsxp length: %w", err)
		}
		if length == -1 {
			return &object{value: nil}, nil
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(d.r, raw); err != nil {
			return nil, fmt.Errorf("read charsxp payload: %w", err)
		}
		return &object{value: string(raw)}, nil

	case sexpLogical, sexpInteger:
		length, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read vector length: %w", err)
		}
		cells := make([]any, length)
		for i := range cells {
			v, err := d.readInt()
			if err != nil {
				return nil, fmt.Errorf("read integer cell: %w", err)
			}
			switch {
			case v == naInteger:
				cells[i] = nil
			case sexpType == sexpLogical:
				cells[i] = v != 0
			default:
				cells[i] = int64(v)
			}
		}
		obj := &object{value: cells}
		return d.finishVector(obj, flags)

	case sexpReal:
		length, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read vector length: %w", err)
		}
		cells := make([]any, length)
		for i := range cells {
			var bits uint64
			if err := binary.Read(d.r, binary.BigEndian, &bits); err != nil {
				return nil, fmt.Errorf("read real cell: %w", err)
			}
			if bits == naRealBits {
				cells[i] = nil
			} else {
				cells[i] = math.Float64frombits(bits)
			}
		}
		obj := &object{value: cells}
		return d.finishVector(obj, flags)

	case sexpString:
		length, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read vector length: %w", err)
		}
		cells := make([]any, length)
		for i := range cells {
			cell, err := d.readItem()
			if err != nil {
				return nil, err
			}
			cells[i] = cell.value
		}
		obj := &object{value: cells}
		return d.finishVector(obj, flags)

	case sexpVector:
		length, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read vector length: %w", err)
		}
		items := make([]*object, length)
		for i := range items {
			item, err := d.readItem()
			if err != nil && !errors.Is(err, errNil) {
				return nil, err
			}
			items[i] = item
		}
		obj := &object{value: items}
		return d.finishVector(obj, flags)

	case sexpPairlist:
		attrs, err := d.readPairlist(flags)
		if err != nil {
			return nil, err
		}
		return &object{value: attrs}, nil

	default:
		return nil, fmt.Errorf("unsupported sexp type %d in rdata stream", sexpType)
	}
}

// finishVector reads the trailing attribute pairlist vector types carry.
func (d *decoder) finishVector(obj *object, flags int32) (*object, error) {
	if flags&flagHasAttr == 0 {
		return obj, nil
	}
	attrFlags, err := d.readInt()
	if err != nil {
		return nil, fmt.Errorf("read attribute flags: %w", err)
	}
	if attrFlags&0xff == sexpNil {
		return obj, nil
	}
	attrs, err := d.readPairlist(attrFlags)
	if err != nil {
		return nil, err
	}
	obj.attrs = attrs
	return obj, nil
}

func (d *decoder) readPairlist(flags int32) (map[string]*object, error) {
	attrs := make(map[string]*object, 4)
	for {
		if flags&0xff != sexpPairlist {
			return nil, fmt.Errorf("unexpected sexp type %d in pairlist", flags&0xff)
		}
		if flags&flagHasAttr != 0 {
			if _, err := d.readItem(); err != nil && !errors.Is(err, errNil) {
				return nil, err
			}
		}
		name := ""
		if flags&flagHasTag != 0 {
			tag, err := d.readItem()
			if err != nil {
				return nil, err
			}
			if text, ok := tag.value.(string); ok {
				name = text
			}
		}
		value, err := d.readItem()
		if err != nil && !errors.Is(err, errNil) {
			return nil, err
		}
		if name != "" {
			attrs[name] = value
		}

		next, err := d.readInt()
		if err != nil {
			return nil, fmt.Errorf("read pairlist continuation: %w", err)
		}
		if next&0xff == sexpNil {
			return attrs, nil
		}
		flags = next
	}
}

func (d *decoder) readInt() (int32, error) {
	var v int32
	if err := binary.Read(d.r, binary.BigEndian, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// convert maps a decoded object to its public shape: *Frame for
// data.frames, []any for atomic vectors and factors, nil otherwise.
func convert(obj *object) any {
	if obj == nil {
		return nil
	}
	if obj.hasClass("data.frame") {
		if frame, err := toFrame(obj); err == nil {
			return frame
		}
		return nil
	}
	if obj.hasClass("factor") {
		return factorCells(obj)
	}
	if cells, ok := obj.value.([]any); ok {
		return cells
	}
	return nil
}

func toFrame(obj *object) (*Frame, error) {
	columns, ok := obj.value.([]*object)
	if !ok {
		return nil, fmt.Errorf("data.frame payload is not a generic vector")
	}
	names := obj.attr("names")
	if names == nil {
		return nil, fmt.Errorf("data.frame has no names attribute")
	}
	nameCells, ok := names.value.([]any)
	if !ok || len(nameCells) != len(columns) {
		return nil, fmt.Errorf("data.frame names do not match column count")
	}

	frame := &Frame{
		Columns: make([]string, len(columns)),
		Data:    make([][]any, len(columns)),
	}
	for i, column := range columns {
		name, _ := nameCells[i].(string)
		frame.Columns[i] = name
		if column.hasClass("factor") {
			frame.Data[i] = factorCells(column)
			continue
		}
		cells, ok := column.value.([]any)
		if !ok {
			return nil, fmt.Errorf("data.frame column %q is not atomic", name)
		}
		frame.Data[i] = cells
	}
	return frame, nil
}

// factorCells expands integer factor codes against the levels attribute.
func factorCells(obj *object) []any {
	codes, ok := obj.value.([]any)
	if !ok {
		return nil
	}
	var levels []any
	if attr := obj.attr("levels"); attr != nil {
		levels, _ = attr.value.([]any)
	}
	cells := make([]any, len(codes))
	for i, code := range codes {
		index, ok := code.(int64)
		if !ok || index < 1 || int(index) > len(levels) {
			cells[i] = nil
			continue
		}
		cells[i] = levels[index-1]
	}
	return cells
}
