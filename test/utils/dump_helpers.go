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
package testutils

import (
	"fmt"
	"strings"
)

// UsersTableDDL returns the mysqldump style CREATE TABLE used by the dump fixtures.
func UsersTableDDL(tableName string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %[1]s;
/*!40101 SET @saved_cs_client     = @@character_set_client */;
CREATE TABLE %[1]s (
  id int NOT NULL AUTO_INCREMENT,
  name varchar(255) NOT NULL,
  email varchar(255) NOT NULL,
  phone varchar(32) DEFAULT NULL,
  score decimal(10,2) DEFAULT NULL,
  PRIMARY KEY (id),
  UNIQUE KEY email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`, QuoteIdentifier(tableName))
}

// UsersInsertSQL returns INSERT statements for rowCount deterministic rows of the
// users fixture, rowsPerStatement tuples per statement. Every third phone is NULL
// and names exercise quote escaping.
func UsersInsertSQL(tableName string, rowCount int, rowsPerStatement int) string {
	var sb strings.Builder
	for first := 1; first <= rowCount; first += rowsPerStatement {
		fmt.Fprintf(&sb, "INSERT INTO %s VALUES ", QuoteIdentifier(tableName))
		for id := first; id < first+rowsPerStatement && id <= rowCount; id++ {
			if id > first {
				sb.WriteString(",")
			}
			phone := fmt.Sprintf("'555-%04d'", id)
			if id%3 == 0 {
				phone = "NULL"
			}
			fmt.Fprintf(&sb, "(%d,'O\\'Brien %d','user%d@example.com',%s,%d.%02d)",
				id, id, id, phone, id*7, id%100)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}

func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// UsersDump is a small mysqldump style file with a header, DDL and inserts.
func UsersDump(tableName string, rowCount int, rowsPerStatement int) string {
	return "-- MySQL dump 10.13  Distrib 8.0.33\n" +
		"/*!40101 SET NAMES utf8mb4 */;\n\n" +
		UsersTableDDL(tableName) + "\n" +
		"LOCK TABLES " + QuoteIdentifier(tableName) + " WRITE;\n" +
		UsersInsertSQL(tableName, rowCount, rowsPerStatement) +
		"UNLOCK TABLES;\n"
}
