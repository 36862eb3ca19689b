// Package config loads typed configuration structs from the environment.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/shifter/fn"
	"github.com/a-peyrard/shifter/option"
	"github.com/a-peyrard/shifter/reflectutils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix   string
		dotEnvs  []string
		defaults map[string]any
	}

	// WithDefault can be implemented by config structs (or nested ones) to fill unset values.
	WithDefault interface {
		ApplyDefault()
	}
)

// WithEnvPrefix sets the prefix of all the environment variables read by Load.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithDotEnv loads the given dotenv files into the environment before reading it.
// Variables already present in the environment are not overridden.
func WithDotEnv(paths ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.dotEnvs = append(opts.dotEnvs, paths...)
	}
}

// WithDefaultValue registers a default value for a key, using the mapstructure key path.
func WithDefaultValue(key string, value any) option.Option[Options] {
	return func(opts *Options) {
		if opts.defaults == nil {
			opts.defaults = make(map[string]any)
		}
		opts.defaults[key] = value
	}
}

// Load builds a T from the environment.
//
// Each leaf field is bound to PREFIX_FIELD_NAME, nested structs add their own segment,
// so the field Broker.Uris with prefix APP is read from APP_BROKER_URIS.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	if len(options.dotEnvs) > 0 {
		if err := godotenv.Load(options.dotEnvs...); err != nil {
			return nil, fmt.Errorf("unable to load dotenv files %v:\n\t%w", options.dotEnvs, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range options.defaults {
		v.SetDefault(key, value)
	}

	var vT T
	typ := reflect.TypeOf(vT)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config type %T must be a struct", vT)
	}
	bindEnvs(v, options.prefix, reflect.New(typ).Elem().Interface())

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config:\n\t%w", err)
	}

	withDefaultValueType := reflect.TypeOf((*WithDefault)(nil)).Elem()
	callApplyDefault := func(val reflect.Value, typ reflect.Type, _ []string) {
		if typ.Implements(withDefaultValueType) && val.IsValid() {
			val.Interface().(WithDefault).ApplyDefault()
		}
	}
	reflectutils.WalkStruct(
		&vT,
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			callApplyDefault,
		),
	)

	return &vT, nil
}

func bindEnvs(viperI *viper.Viper, envPrefix string, myStruct any, parts ...string) {
	ifv := reflect.ValueOf(myStruct)
	ift := reflect.TypeOf(myStruct)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		if !t.IsExported() {
			continue
		}
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			tv = t.Name
		}
		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(viperI, envPrefix, v.Interface(), append(parts, tv)...)
		case reflect.Pointer:
			if t.Type.Elem().Kind() == reflect.Struct {
				bindEnvs(viperI, envPrefix, reflect.Zero(t.Type.Elem()).Interface(), append(parts, tv)...)
			}
		default:
			key := strings.Join(append(parts, tv), ".")
			envKeys := make([]string, 0, len(parts)+1)
			for _, part := range append(parts, tv) {
				envKeys = append(envKeys, toScreamingSnakeCase(part))
			}
			_ = viperI.BindEnv(key, mergeWithEnvPrefix(envPrefix, strings.Join(envKeys, "_")))
		}
	}
}

func mergeWithEnvPrefix(envPrefix string, in string) string {
	if envPrefix != "" {
		return strings.ToUpper(envPrefix + "_" + in)
	}

	return strings.ToUpper(in)
}

// toScreamingSnakeCase turns CustomerId or customer_id into CUSTOMER_ID.
func toScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return in
	}

	sb := strings.Builder{}
	sb.Grow(len(in) + len(in)/3)

	for i, b := range []byte(in) {
		write := true
		separate := false

		switch {
		case 'a' <= b && b <= 'z':
			b -= 'a' - 'A'
		case 'A' <= b && b <= 'Z':
			separate = true
		case b == '_' || b == '-':
			write = false
			separate = true
		}

		if i > 0 && separate && !strings.HasSuffix(sb.String(), "_") {
			sb.WriteByte('_')
		}
		if write {
			sb.WriteByte(b)
		}
	}

	return sb.String()
}
