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
package modspec

import (
	"strconv"
	"strings"

	goerrors "github.com/go-errors/errors"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/tokenizer"
)

func validateTableName(table string) error {
	switch {
	case table == "":
		return goerrors.Errorf("table name is empty")
	case strings.ContainsAny(table, "./"):
		return goerrors.Errorf("table name %q must not contain '.' or '/'", table)
	case len(table) > tokenizer.MAX_TABLE_NAME_LENGTH:
		return goerrors.Errorf("table name %q is longer than %d bytes", table, tokenizer.MAX_TABLE_NAME_LENGTH)
	}
	return nil
}

func parseColumnPosition(key string) (int, error) {
	column, err := strconv.Atoi(key)
	if err != nil {
		return 0, goerrors.Errorf("column position %q is not an integer", key)
	}
	if column < 1 {
		return 0, goerrors.Errorf("column position %d must be >= 1", column)
	}
	return column, nil
}

func validateColumnSpec(field string, cs *ColumnSpec) error {
	if cs.Format == "" {
		return errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".format",
			goerrors.Errorf("format is required"))
	}
	if _, ok := anon.LookupFormat(cs.Format); !ok {
		return errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".format",
			goerrors.Errorf("unknown format %q. Run list-formats to see the supported formats", cs.Format))
	}
	if cs.OptionalWeight < 0 || cs.OptionalWeight > 1 {
		return errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".optional_weight",
			goerrors.Errorf("optional_weight %v is not in [0, 1]", cs.OptionalWeight))
	}
	switch cs.OptionalDefault.(type) {
	case nil, string, float64, bool:
	default:
		return errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".optional_default",
			goerrors.Errorf("optional_default must be a string, number, boolean or null"))
	}
	if cs.Unique && cs.Optional && cs.OptionalDefault != nil {
		return errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".optional_default",
			goerrors.Errorf("a unique column can only default to null; %v would repeat", cs.OptionalDefault))
	}
	return nil
}
