package geo

import "strings"

// Country is one supported country for supply onboarding.
type Country struct {
	Code string
	Name string
}

// City is one supported city, keyed "country:city" in profile data.
type City struct {
	CountryCode string
	Code        string
	Name        string
}

var Countries = []Country{
	{Code: "by", Name: "Belarus"},
	{Code: "pl", Name: "Poland"},
	{Code: "lt", Name: "Lithuania"},
	{Code: "other", Name: "Other"},
}

var Cities = []City{
	{CountryCode: "by", Code: "minsk", Name: "Minsk"},
	{CountryCode: "pl", Code: "warszawa", Name: "Warszawa"},
	{CountryCode: "lt", Code: "vilnius", Name: "Vilnius"},
}

// SplitLocation parses a stored location value, either "country" or
// "country:city", into the country code and a display city name.
func SplitLocation(location string) (countryCode, cityName string) {
	if location == "" {
		return "", ""
	}
	parts := strings.SplitN(location, ":", 2)
	countryCode = parts[0]
	if len(parts) == 1 {
		return countryCode, ""
	}
	for _, c := range Cities {
		if c.CountryCode == countryCode && c.Code == parts[1] {
			return countryCode, c.Name
		}
	}
	return countryCode, parts[1]
}

// LocationName renders a stored location for display.
func LocationName(location string) string {
	country, city := SplitLocation(location)
	if country == "" {
		return ""
	}
	var countryName string
	for _, c := range Countries {
		if c.Code == country {
			countryName = c.Name
			break
		}
	}
	if countryName == "" {
		countryName = country
	}
	if city == "" {
		return countryName
	}
	return city + ", " + countryName
}

// IsCitySpecific reports whether the location names a city rather than a
// whole country; posting requires city precision.
func IsCitySpecific(location string) bool {
	_, city := SplitLocation(location)
	return city != ""
}
