/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package anon

import (
	"fmt"
	"sort"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type FormatFunc func(f *Faker, original string, args []any) (any, error)

type Format struct {
	Name        string
	Args        string
	Description string
	Fn          FormatFunc
}

var formats = map[string]*Format{}

func registerFormat(name, args, description string, fn FormatFunc) {
	formats[name] = &Format{Name: name, Args: args, Description: description, Fn: fn}
}

// RegisterFormat adds or replaces a format. Not safe for use while generators run.
func RegisterFormat(name, args, description string, fn FormatFunc) {
	registerFormat(name, args, description, fn)
}

func LookupFormat(name string) (*Format, bool) {
	format, ok := formats[name]
	return format, ok
}

func FormatNames() []string {
	names := lo.Keys(formats)
	sort.Strings(names)
	return names
}

func simple(fn func(fake *gofakeit.Faker) any) FormatFunc {
	return func(f *Faker, _ string, _ []any) (any, error) {
		return fn(f.fake), nil
	}
}

func init() {
	registerFormat("passthrough", "[value]", "the first argument, or the original value when none is given",
		func(f *Faker, original string, args []any) (any, error) {
			if len(args) == 0 {
				return original, nil
			}
			return args[0], nil
		})
	registerFormat("null", "", "always NULL", func(f *Faker, _ string, _ []any) (any, error) {
		return nil, nil
	})
	registerFormat("hash", "[prefix]", "salted sha256 of the original value, 16 hex chars",
		func(f *Faker, original string, args []any) (any, error) {
			prefix, err := argString(args, 0, "")
			if err != nil {
				return nil, err
			}
			return f.hasher.GetHash(prefix, original), nil
		})
	registerFormat("uuid", "", "random version 4 uuid", func(f *Faker, _ string, _ []any) (any, error) {
		id, err := uuid.NewRandomFromReader(f.rng)
		if err != nil {
			return nil, fmt.Errorf("generate uuid: %w", err)
		}
		return id.String(), nil
	})

	registerFormat("name", "", "full name", simple(func(g *gofakeit.Faker) any { return g.Name() }))
	registerFormat("first_name", "", "first name", simple(func(g *gofakeit.Faker) any { return g.FirstName() }))
	registerFormat("last_name", "", "last name", simple(func(g *gofakeit.Faker) any { return g.LastName() }))
	registerFormat("email", "", "email address", simple(func(g *gofakeit.Faker) any { return g.Email() }))
	registerFormat("username", "", "user name", simple(func(g *gofakeit.Faker) any { return g.Username() }))
	registerFormat("phone", "", "10 digit phone number", simple(func(g *gofakeit.Faker) any { return g.Phone() }))
	registerFormat("company", "", "company name", simple(func(g *gofakeit.Faker) any { return g.Company() }))
	registerFormat("street", "", "street address", simple(func(g *gofakeit.Faker) any { return g.Street() }))
	registerFormat("city", "", "city", simple(func(g *gofakeit.Faker) any { return g.City() }))
	registerFormat("zip", "", "postal code", simple(func(g *gofakeit.Faker) any { return g.Zip() }))
	registerFormat("country", "", "country name", simple(func(g *gofakeit.Faker) any { return g.Country() }))
	registerFormat("url", "", "url", simple(func(g *gofakeit.Faker) any { return g.URL() }))
	registerFormat("ipv4", "", "ipv4 address", simple(func(g *gofakeit.Faker) any { return g.IPv4Address() }))
	registerFormat("word", "", "single word", simple(func(g *gofakeit.Faker) any { return g.Word() }))
	registerFormat("ssn", "", "social security number", simple(func(g *gofakeit.Faker) any { return g.SSN() }))
	registerFormat("credit_card", "", "credit card number", simple(func(g *gofakeit.Faker) any {
		return g.CreditCardNumber(nil)
	}))
	registerFormat("bool", "", "1 or 0", simple(func(g *gofakeit.Faker) any { return g.Bool() }))
	registerFormat("datetime", "", "date and time as YYYY-MM-DD hh:mm:ss", simple(func(g *gofakeit.Faker) any {
		return g.Date()
	}))

	registerFormat("sentence", "[words=5]", "sentence of lorem words",
		func(f *Faker, _ string, args []any) (any, error) {
			n, err := argInt(args, 0, 5)
			if err != nil {
				return nil, err
			}
			return f.fake.Sentence(n), nil
		})
	registerFormat("number", "[min=0] [max=2147483647]", "integer in [min, max]",
		func(f *Faker, _ string, args []any) (any, error) {
			min, err := argInt(args, 0, 0)
			if err != nil {
				return nil, err
			}
			max, err := argInt(args, 1, 2147483647)
			if err != nil {
				return nil, err
			}
			if min > max {
				return nil, fmt.Errorf("min %d is greater than max %d", min, max)
			}
			return f.fake.Number(min, max), nil
		})
	registerFormat("float", "[min=0] [max=1]", "floating point number in [min, max)",
		func(f *Faker, _ string, args []any) (any, error) {
			min, err := argFloat(args, 0, 0)
			if err != nil {
				return nil, err
			}
			max, err := argFloat(args, 1, 1)
			if err != nil {
				return nil, err
			}
			if min > max {
				return nil, fmt.Errorf("min %v is greater than max %v", min, max)
			}
			return f.fake.Float64Range(min, max), nil
		})
	registerFormat("date", "[layout=2006-01-02]", "date formatted with a Go time layout",
		func(f *Faker, _ string, args []any) (any, error) {
			layout, err := argString(args, 0, "2006-01-02")
			if err != nil {
				return nil, err
			}
			return f.fake.Date().Format(layout), nil
		})
	registerFormat("numerify", "pattern", "replaces each # with a digit",
		func(f *Faker, _ string, args []any) (any, error) {
			pattern, err := argString(args, 0, "###")
			if err != nil {
				return nil, err
			}
			return f.fake.Numerify(pattern), nil
		})
	registerFormat("lexify", "pattern", "replaces each ? with a letter",
		func(f *Faker, _ string, args []any) (any, error) {
			pattern, err := argString(args, 0, "???")
			if err != nil {
				return nil, err
			}
			return f.fake.Lexify(pattern), nil
		})
	registerFormat("regex", "pattern", "string matching a regular expression",
		func(f *Faker, _ string, args []any) (any, error) {
			pattern, err := argString(args, 0, "")
			if err != nil {
				return nil, err
			}
			if pattern == "" {
				return nil, fmt.Errorf("regex needs a pattern argument")
			}
			return f.fake.Regex(pattern), nil
		})
	registerFormat("password", "[length=12]", "password with upper, lower and numeric characters",
		func(f *Faker, _ string, args []any) (any, error) {
			n, err := argInt(args, 0, 12)
			if err != nil {
				return nil, err
			}
			return f.fake.Password(true, true, true, false, false, n), nil
		})
	registerFormat("random_element", "value...", "one of the arguments",
		func(f *Faker, _ string, args []any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("random_element needs at least one argument")
			}
			return args[f.rng.Intn(len(args))], nil
		})
}
