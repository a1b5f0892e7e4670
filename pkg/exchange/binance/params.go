package binance

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindDecimal
)

// Value is a scalar request parameter: a string, an integer or a decimal.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	dec  decimal.Decimal
}

// String builds a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int builds an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Decimal builds a decimal Value. Decimals are rendered without exponent and
// without trailing zeros beyond what the decimal carries.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Text renders the value exactly as it is sent on the wire, before escaping.
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return v.dec.String()
	default:
		return v.str
	}
}

func (v Value) empty() bool {
	return v.kind == KindString && v.str == ""
}

type param struct {
	key   string
	value Value
}

// Params is an insertion-ordered set of request parameters. Encode always
// emits keys in the order they were first set, so the string that is signed
// is the string that is sent.
type Params struct {
	items []param
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Set assigns key. An existing key keeps its position; an empty string value
// removes the key, since the exchange rejects empty parameters.
func (p *Params) Set(key string, value Value) *Params {
	if value.empty() {
		p.Del(key)
		return p
	}
	for i := range p.items {
		if p.items[i].key == key {
			p.items[i].value = value
			return p
		}
	}
	p.items = append(p.items, param{key: key, value: value})
	return p
}

// Del removes key if present.
func (p *Params) Del(key string) {
	for i := range p.items {
		if p.items[i].key == key {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	for _, it := range p.items {
		if it.key == key {
			return it.value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Keys returns parameter names in encoding order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.items))
	for i, it := range p.items {
		keys[i] = it.key
	}
	return keys
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	if p == nil {
		return NewParams()
	}
	return &Params{items: append([]param(nil), p.items...)}
}

// Encode renders key=value pairs joined by '&' using form encoding, which
// escapes spaces as '+'.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, it := range p.items {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(it.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(it.value.Text()))
	}
	return sb.String()
}
