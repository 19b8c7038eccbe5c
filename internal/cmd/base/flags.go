package base

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// optionalBoolValue is a tri-state bool flag: nil until the flag appears on
// the command line.
type optionalBoolValue struct {
	target **bool
}

func (v *optionalBoolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.target = &b
	return nil
}

func (v *optionalBoolValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return strconv.FormatBool(**v.target)
}

func (v *optionalBoolValue) IsBoolFlag() bool { return true }

// OptionalBoolVar defines a bool flag that distinguishes unset from false.
func (f *FlagSet) OptionalBoolVar(p **bool, name, usage string) {
	f.Var(&optionalBoolValue{target: p}, name, usage)
}

// optionalStringValue is a string flag that distinguishes unset from empty.
type optionalStringValue struct {
	target **string
}

func (v *optionalStringValue) Set(s string) error {
	*v.target = &s
	return nil
}

func (v *optionalStringValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return **v.target
}

// OptionalStringVar defines a string flag that distinguishes unset from
// empty, so -flag="" is a meaningful value.
func (f *FlagSet) OptionalStringVar(p **string, name, usage string) {
	f.Var(&optionalStringValue{target: p}, name, usage)
}

// stringSliceValue accumulates repeated flags, splitting each on commas.
type stringSliceValue struct {
	target *[]string
}

func (v *stringSliceValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		*v.target = append(*v.target, strings.TrimSpace(part))
	}
	return nil
}

func (v *stringSliceValue) String() string {
	if v.target == nil {
		return ""
	}
	return strings.Join(*v.target, ",")
}

// StringSliceVar defines a repeatable, comma-splittable list flag.
func (f *FlagSet) StringSliceVar(p *[]string, name, usage string) {
	f.Var(&stringSliceValue{target: p}, name, usage)
}

// jsonMapValue decodes a JSON object flag into a map.
type jsonMapValue struct {
	target *map[string]any
}

func (v *jsonMapValue) Set(s string) error {
	m := map[string]any{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}
	*v.target = m
	return nil
}

func (v *jsonMapValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	b, _ := json.Marshal(*v.target)
	return string(b)
}

// JSONMapVar defines a flag taking a JSON object, e.g. resource attributes.
func (f *FlagSet) JSONMapVar(p *map[string]any, name, usage string) {
	f.Var(&jsonMapValue{target: p}, name, usage)
}
