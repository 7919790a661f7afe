package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    string
		wantErr bool
	}{
		{name: "plain string", value: "example", want: "example"},
		{name: "string with inner spaces", value: "a b", want: "a b"},
		{name: "empty string", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
		{name: "missing value", value: nil, wantErr: true},
		{name: "wrong type", value: 42.0, wantErr: true},
		{name: "boolean", value: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.value, "field")
			if tt.wantErr {
				require.Error(t, err)
				argErr := AsArgument(err)
				require.NotNil(t, argErr)
				assert.Equal(t, "field", argErr.Field)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomainName(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{name: "simple domain", value: "example.com"},
		{name: "subdomain", value: "www.example.co.uk"},
		{name: "hyphenated label", value: "my-site.example.org"},
		{name: "no tld", value: "localhost", wantErr: true},
		{name: "leading hyphen", value: "-bad.example.com", wantErr: true},
		{name: "trailing dot label", value: "example..com", wantErr: true},
		{name: "numeric tld", value: "example.123", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "not a string", value: 7.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DomainName(tt.value, "domain")
			if tt.wantErr {
				require.Error(t, err)
				require.NotNil(t, AsArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{name: "plain address", value: "user@example.com"},
		{name: "plus tag", value: "user+tag@example.com"},
		{name: "no at sign", value: "example.com", wantErr: true},
		{name: "no domain dot", value: "user@localhost", wantErr: true},
		{name: "spaces", value: "us er@example.com", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.value, "email")
			if tt.wantErr {
				require.Error(t, err)
				require.NotNil(t, AsArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestPositiveNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    float64
		wantErr bool
	}{
		{name: "float", value: 2.5, want: 2.5},
		{name: "int", value: 3, want: 3},
		{name: "int64", value: int64(10), want: 10},
		{name: "zero", value: 0.0, wantErr: true},
		{name: "negative", value: -1.0, wantErr: true},
		{name: "missing", value: nil, wantErr: true},
		{name: "string", value: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PositiveNumber(tt.value, "count")
			if tt.wantErr {
				require.Error(t, err)
				require.NotNil(t, AsArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolean(t *testing.T) {
	got, err := Boolean(true, "flag")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = Boolean("true", "flag")
	require.Error(t, err)
	assert.NotNil(t, AsArgument(err))

	_, err = Boolean(nil, "flag")
	require.Error(t, err)
}

func TestStringArray(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    []string
		wantErr bool
	}{
		{name: "string slice", value: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "json decoded slice", value: []interface{}{"x", "y"}, want: []string{"x", "y"}},
		{name: "empty slice", value: []interface{}{}, want: []string{}},
		{name: "mixed elements", value: []interface{}{"a", 1.0}, wantErr: true},
		{name: "empty element", value: []interface{}{"a", " "}, wantErr: true},
		{name: "not an array", value: "a,b", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringArray(tt.value, "items")
			if tt.wantErr {
				require.Error(t, err)
				require.NotNil(t, AsArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObject(t *testing.T) {
	got, err := Object(map[string]interface{}{"name": "Ada"}, "contact")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got["name"])

	_, err = Object("not an object", "contact")
	require.Error(t, err)
	require.NotNil(t, AsArgument(err))

	_, err = Object(nil, "contact")
	require.Error(t, err)
	assert.Equal(t, "contact", AsArgument(err).Field)
}

func TestEnum(t *testing.T) {
	allowed := []string{"mysql", "mssql"}

	got, err := Enum("mysql", allowed, "type")
	require.NoError(t, err)
	assert.Equal(t, "mysql", got)

	_, err = Enum("postgres", allowed, "type")
	require.Error(t, err)
	argErr := AsArgument(err)
	require.NotNil(t, argErr)
	// The error must enumerate the allowed set.
	assert.Contains(t, argErr.Reason, "mysql")
	assert.Contains(t, argErr.Reason, "mssql")

	_, err = Enum(nil, allowed, "type")
	require.Error(t, err)
}

func TestOptional(t *testing.T) {
	// Absent values pass through untouched.
	got, present, err := Optional(nil, "ttl", PositiveNumber)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Zero(t, got)

	// Present values are validated normally.
	got, present, err = Optional(300.0, "ttl", PositiveNumber)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 300.0, got)

	_, _, err = Optional(-1.0, "ttl", PositiveNumber)
	require.Error(t, err)
	require.NotNil(t, AsArgument(err))
}

func TestArgumentErrorMessage(t *testing.T) {
	_, err := String("", "domain_id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain_id")
}
