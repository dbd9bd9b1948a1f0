package format

import (
	"fmt"
	"reflect"
	"strings"
)

// decodeParameterStyleHook, decodeKeywordCaseHook, and decodeBreakModeHook
// let DecodeOptions accept the string spellings the external interface
// documents ("indexed", "upper", "before", ...) for fields that are Go
// enums internally, mirroring the string-to-enum decode hooks a
// mapstructure-based config loader typically registers per custom type.

func decodeParameterStyleHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(ParameterStyle(0)) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch strings.ToLower(s) {
	case "indexed":
		return ParameterStyleIndexed, nil
	case "anonymous":
		return ParameterStyleAnonymous, nil
	case "named":
		return ParameterStyleNamed, nil
	default:
		return nil, fmt.Errorf("format: unknown parameterStyle %q", s)
	}
}

func decodeKeywordCaseHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(KeywordCase(0)) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch strings.ToLower(s) {
	case "", "none":
		return KeywordCaseNone, nil
	case "upper":
		return KeywordCaseUpper, nil
	case "lower":
		return KeywordCaseLower, nil
	default:
		return nil, fmt.Errorf("format: unknown keywordCase %q", s)
	}
}

func decodeBreakModeHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(BreakMode(0)) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch strings.ToLower(s) {
	case "", "none":
		return BreakNone, nil
	case "before":
		return BreakBefore, nil
	case "after":
		return BreakAfter, nil
	default:
		return nil, fmt.Errorf("format: unknown break mode %q", s)
	}
}
