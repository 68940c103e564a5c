package extract

import (
	"encoding/json"
	"strings"
)

// Fields is the mapping of named raw fields recovered from a model response,
// before normalization. Every value is a raw string; absent fields are empty.
type Fields struct {
	LoadNumber    string
	PickupDate    string
	DeliveryDate  string
	BrokerCompany string
	BrokerContact string
	ContactPhone  string
	PhoneExt      string
	ContactEmail  string
	Origin        string
	Destination   string
	Equipment     string
	Miles         string
	PostedRate    string
	BookedRate    string
	Shipper       string
	Receiver      string

	InvoiceEmail string

	// json-v1 extras, empty for csv-v2 responses.
	BrokerMC  string
	Commodity string
	Weight    string
	Notes     string

	// RawLine is the verbatim comma-separated data line for audit, set only
	// for csv-v2 responses.
	RawLine string
}

// numDelimitedFields is the fixed positional arity of the csv-v2 data line.
const numDelimitedFields = 16

// ParseDelimited extracts the named fields from a csv-v2 response: a line
// labeled with the data-line marker followed by 16 comma-separated positional
// values, and a second labeled block carrying the invoice email. Short rows
// default missing positions to empty string; extra positions are ignored. A
// response without the data-line label fails with a MalformedError carrying
// the full raw text.
func ParseDelimited(raw string) (*Fields, error) {
	dataLine, ok := extractLabeledBlock(raw, dataLineLabel)
	if !ok || dataLine == "" {
		return nil, NewMalformedError("data line label not found in response", raw)
	}

	parts := strings.Split(dataLine, ",")
	vals := make([]string, numDelimitedFields)
	for i := 0; i < numDelimitedFields && i < len(parts); i++ {
		vals[i] = strings.TrimSpace(parts[i])
	}

	invoiceEmail, _ := extractLabeledBlock(raw, invoiceEmailLabel)

	return &Fields{
		LoadNumber:    vals[0],
		PickupDate:    vals[1],
		DeliveryDate:  vals[2],
		BrokerCompany: vals[3],
		BrokerContact: vals[4],
		ContactPhone:  vals[5],
		PhoneExt:      vals[6],
		ContactEmail:  vals[7],
		Origin:        vals[8],
		Destination:   vals[9],
		Equipment:     vals[10],
		Miles:         vals[11],
		PostedRate:    vals[12],
		BookedRate:    vals[13],
		Shipper:       vals[14],
		Receiver:      vals[15],
		InvoiceEmail:  invoiceEmail,
		RawLine:       dataLine,
	}, nil
}

// blockLabels are the block markers a csv-v2 response may contain.
var blockLabels = []string{dataLineLabel, invoiceEmailLabel}

// extractLabeledBlock finds a line starting with label (case-insensitive) and
// returns the text after the label, either the remainder of the same line or
// the next non-empty line. The forward scan stops at any other known label so
// an empty block never swallows the next block's content.
func extractLabeledBlock(raw, label string) (string, bool) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !hasLabelPrefix(trimmed, label) {
			continue
		}
		if rest := strings.TrimSpace(trimmed[len(label):]); rest != "" {
			return rest, true
		}
		for _, next := range lines[i+1:] {
			v := strings.TrimSpace(next)
			if v == "" {
				continue
			}
			if isBlockLabel(v) {
				break
			}
			return v, true
		}
		return "", true
	}
	return "", false
}

func hasLabelPrefix(line, label string) bool {
	return len(line) >= len(label) && strings.EqualFold(line[:len(label)], label)
}

func isBlockLabel(line string) bool {
	for _, label := range blockLabels {
		if hasLabelPrefix(line, label) {
			return true
		}
	}
	return false
}

// structuredResponse models the fixed key set of a json-v1 response. Numeric
// fields tolerate both JSON numbers and quoted strings.
type structuredResponse struct {
	LoadNumber      string      `json:"load_number"`
	BrokerName      string      `json:"broker_name"`
	BrokerMCNumber  string      `json:"broker_mc_number"`
	Rate            json.Number `json:"rate"`
	PickupDate      string      `json:"pickup_date"`
	DeliveryDate    string      `json:"delivery_date"`
	PickupCity      string      `json:"pickup_city"`
	PickupState     string      `json:"pickup_state"`
	PickupAddress   string      `json:"pickup_address"`
	DeliveryCity    string      `json:"delivery_city"`
	DeliveryState   string      `json:"delivery_state"`
	DeliveryAddress string      `json:"delivery_address"`
	Commodity       string      `json:"commodity"`
	Weight          string      `json:"weight"`
	Miles           json.Number `json:"miles"`
	Notes           string      `json:"notes"`
}

// ParseStructured extracts the named fields from a json-v1 response. Missing
// keys default (text to empty string, numbers to 0); a payload that is not a
// well-formed JSON object fails with a MalformedError carrying the full raw
// text.
func ParseStructured(raw string) (*Fields, error) {
	cleaned := stripCodeFences(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return nil, NewMalformedError("response is not a JSON object", raw)
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	var resp structuredResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, NewMalformedError("response is not a well-formed JSON object: "+err.Error(), raw)
	}

	return &Fields{
		LoadNumber:    strings.TrimSpace(resp.LoadNumber),
		PickupDate:    strings.TrimSpace(resp.PickupDate),
		DeliveryDate:  strings.TrimSpace(resp.DeliveryDate),
		BrokerCompany: strings.TrimSpace(resp.BrokerName),
		Origin:        joinCityState(resp.PickupCity, resp.PickupState),
		Destination:   joinCityState(resp.DeliveryCity, resp.DeliveryState),
		Miles:         resp.Miles.String(),
		BookedRate:    resp.Rate.String(),
		BrokerMC:      strings.TrimSpace(resp.BrokerMCNumber),
		Commodity:     strings.TrimSpace(resp.Commodity),
		Weight:        strings.TrimSpace(resp.Weight),
		Notes:         strings.TrimSpace(resp.Notes),
	}, nil
}

func joinCityState(city, state string) string {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	switch {
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + " " + state
	}
}

// stripCodeFences removes a surrounding markdown code fence if the model
// added one despite the contract forbidding it.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
