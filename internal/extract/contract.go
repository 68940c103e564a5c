package extract

import "fmt"

// ContractVersion selects the instruction contract sent to the
// document-understanding model and, with it, the response shape the parser
// expects. Exactly one contract is active per deployment; the parser never
// sniffs the response to guess which one was used. Any change to field order,
// naming, or format rules is a breaking change and requires a new version.
type ContractVersion string

const (
	// ContractCSVv2 asks for a single comma-separated data line with 16 fixed
	// positions plus a separate invoice-email block. Dates are YYYY-MM-DD.
	ContractCSVv2 ContractVersion = "csv-v2"

	// ContractJSONv1 asks for a JSON object with a fixed key set.
	ContractJSONv1 ContractVersion = "json-v1"
)

// ValidContracts is the set of accepted contract versions.
var ValidContracts = map[ContractVersion]bool{
	ContractCSVv2:  true,
	ContractJSONv1: true,
}

// dataLineLabel and invoiceEmailLabel anchor the two blocks of a csv-v2
// response. Matching is case-insensitive at the start of a line.
const (
	dataLineLabel     = "CSV LINE:"
	invoiceEmailLabel = "INVOICE EMAIL:"
)

// BuildPrompt returns the instruction contract for the given version. The
// prompt text is part of the wire contract with the parser: the 16-position
// field order of csv-v2 and the key set of json-v1 line up exactly with
// ParseDelimited and ParseStructured.
func BuildPrompt(version ContractVersion) (string, error) {
	switch version {
	case ContractCSVv2:
		return promptCSVv2, nil
	case ContractJSONv1:
		return promptJSONv1, nil
	default:
		return "", fmt.Errorf("unknown contract version: %s", version)
	}
}

const promptCSVv2 = `You are a freight document data extraction assistant. Analyze the provided rate confirmation document and extract the load details.

Respond with EXACTLY two labeled blocks and nothing else.

Block one starts with the label "CSV LINE:" on its own line, followed by a single comma-separated line with these 16 values in this exact order:
1. load or order number
2. pickup date (YYYY-MM-DD)
3. delivery date (YYYY-MM-DD)
4. broker company name
5. broker contact name
6. contact phone number
7. phone extension (empty if none)
8. contact email address
9. origin city and 2-letter state (e.g. "Johnston SC")
10. destination city and 2-letter state
11. equipment code: V for van, R for reefer, F for flatbed, VR for van or reefer
12. total miles (number only; your best estimate if not stated)
13. posted rate in dollars (number only, 0 if unknown)
14. booked rate in dollars (number only)
15. shipper name
16. receiver name

Block two starts with the label "INVOICE EMAIL:" on its own line, followed by the email address invoices should be sent to (this is often different from the contact email).

Do not use commas inside any value. If a value is not present in the document, leave its position empty. Do not add markdown, explanations, or extra lines.`

const promptJSONv1 = `You are a freight document data extraction assistant. Analyze the provided rate confirmation document and extract the load details.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object with this exact key set:
{
  "load_number": "",
  "broker_name": "",
  "broker_mc_number": "",
  "rate": 0,
  "pickup_date": "",
  "delivery_date": "",
  "pickup_city": "",
  "pickup_state": "",
  "pickup_address": "",
  "delivery_city": "",
  "delivery_state": "",
  "delivery_address": "",
  "commodity": "",
  "weight": "",
  "miles": 0,
  "notes": ""
}

Dates must be YYYY-MM-DD. States are 2-letter codes. If a field is not present in the document, use empty string for text and 0 for numbers.`
