package models

import (
	"fmt"
	"strings"
)

type Country struct {
	Code     string
	Language string
	Name     string
}

var AcceptedCountries = []Country{
	{Code: "AR", Language: "es-ar", Name: "Argentina"},
	{Code: "BR", Language: "pt-br", Name: "Brasil"},
	{Code: "CA", Language: "en-ca", Name: "Canada"},
	{Code: "CL", Language: "es-cl", Name: "Chile"},
	{Code: "CO", Language: "es-co", Name: "Colombia"},
	{Code: "CR", Language: "es-cr", Name: "Costa Rica"},
	{Code: "EC", Language: "es-ec", Name: "Ecuador"},
	{Code: "MX", Language: "es-mx", Name: "México"},
	{Code: "PA", Language: "es-pa", Name: "Panamá"},
	{Code: "PY", Language: "es-py", Name: "Paraguay"},
	{Code: "PE", Language: "es-pe", Name: "Perú"},
	{Code: "US", Language: "en-us", Name: "United States"},
	{Code: "UY", Language: "es-uy", Name: "Uruguay"},
}

func CountryByName(name string) (Country, error) {
	for _, c := range AcceptedCountries {
		if c.Name == name {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("country %q is not served: %w", name, ErrNotFound)
}

func CountryByCode(code string) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range AcceptedCountries {
		if c.Code == code {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("country code %q is not served: %w", code, ErrNotFound)
}
