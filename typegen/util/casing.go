package util

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// ToSnakeCase converts PascalCase, camelCase or kebab-case to snake_case.
// e.g., "CoinPackage" -> "coin_package"
func ToSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

// ToPascalCase converts snake_case or kebab-case to PascalCase.
// e.g., "transfer_coins" -> "TransferCoins"
func ToPascalCase(s string) string {
	return strcase.ToCamel(s)
}

// IsIdentifier reports whether s can be used as a bare TypeScript identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_' || ch == '$':
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return !reservedWords[s]
}

// PropertyKey renders s as an object-literal key, quoting it when needed.
func PropertyKey(s string) string {
	if IsIdentifier(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true,
}
