package database

import (
	"fmt"
	"net/url"
	"strings"
)

// ConstructDatabaseURL points a server URL at the named database, replacing
// any database already in the path. Without a name the base URL is returned
// unchanged; otherwise sslmode=disable is added unless the URL already sets
// sslmode.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), databaseName)
	}

	u.Path = "/" + databaseName
	u.RawPath = ""
	if !u.Query().Has("sslmode") {
		if u.RawQuery != "" {
			u.RawQuery += "&"
		}
		u.RawQuery += "sslmode=disable"
	}

	return u.String()
}
