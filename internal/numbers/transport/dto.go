package transport

// NumberRequest identifies a number to parse. A nil Region means the number
// must carry its own country calling code, unless a default region is
// configured.
type NumberRequest struct {
	Number string  `json:"number" validate:"required,max=250"`
	Region *string `json:"region,omitempty" validate:"omitempty,max=8"`
}

type FormatRequest struct {
	NumberRequest
	Format string `json:"format" validate:"max=32"`
}

type CompareRequest struct {
	A  NumberRequest `json:"a"`
	B  NumberRequest `json:"b"`
	Op string        `json:"op" validate:"required,max=2"`
}

// NumberResponse describes a parsed number.
type NumberResponse struct {
	CountryCode    uint32  `json:"countryCode"`
	NationalNumber string  `json:"nationalNumber"`
	Extension      *string `json:"extension,omitempty"`
	Carrier        *string `json:"carrier,omitempty"`
	Valid          bool    `json:"valid"`
	E164           string  `json:"e164"`
	Display        string  `json:"display"`
	Repr           string  `json:"repr"`
}

type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// FormatResponse carries the rendering; Fallback is true when Format was not
// a registered format name and the default rendering was used.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Format    string `json:"format"`
	Fallback  bool   `json:"fallback"`
}

type CompareResponse struct {
	Op     string `json:"op"`
	Result bool   `json:"result"`
}

type FormatsResponse struct {
	Formats []string `json:"formats"`
}

type RegionInfo struct {
	Code        string `json:"code"`
	CountryCode int    `json:"countryCode"`
}

type RegionsResponse struct {
	Regions []RegionInfo `json:"regions"`
}
