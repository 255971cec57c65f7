package domain

// Regulator identifies the publisher of an enforcement action table.
type Regulator string

// Supported regulators.
const (
	// RegulatorGeneric is the combined Data.csv table of any regulator.
	RegulatorGeneric Regulator = "generic"

	// RegulatorFDIC is the Federal Deposit Insurance Corporation.
	RegulatorFDIC Regulator = "fdic"

	// RegulatorOCC is the Office of the Comptroller of the Currency.
	RegulatorOCC Regulator = "occ"

	// RegulatorFED is the Federal Reserve Board.
	RegulatorFED Regulator = "fed"
)

// IsValid returns true if the regulator is recognised.
func (r Regulator) IsValid() bool {
	switch r {
	case RegulatorGeneric, RegulatorFDIC, RegulatorOCC, RegulatorFED:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Regulator) String() string {
	return string(r)
}

// Description returns a human-readable description of the regulator.
func (r Regulator) Description() string {
	switch r {
	case RegulatorGeneric:
		return "Any regulator (Data.csv)"
	case RegulatorFDIC:
		return "FDIC (docket number)"
	case RegulatorOCC:
		return "OCC (order number)"
	case RegulatorFED:
		return "Federal Reserve (URL)"
	default:
		return unknownDescription
	}
}

// KeyName returns what the regulator's lookup key is called.
func (r Regulator) KeyName() string {
	switch r {
	case RegulatorFDIC:
		return "docket number"
	case RegulatorOCC:
		return "order number"
	case RegulatorFED:
		return "URL"
	default:
		return "record ID"
	}
}

// SourceRecord is one resolved row of an input table.
type SourceRecord struct {
	// RecordID identifies the action. For FDIC and FED tables it is the
	// 1-based row number.
	RecordID string

	// Institution is the name of the bank or holding company.
	Institution string

	// Link is the document URL, already prefixed when relative.
	Link string

	// Regulator is the table the record came from.
	Regulator Regulator
}

// OutputRecord is one row of the final report.
type OutputRecord struct {
	RecordID       string
	Institution    string
	KeyInformation string
	Sentence       string
}

// ReportHeader is the column header of the report, in column order.
var ReportHeader = []string{
	"Record ID",
	"Name of Institution",
	"Key Information",
	"Sentence Containing Key Information",
}

// Row returns the record as report columns.
func (r OutputRecord) Row() []string {
	return []string{r.RecordID, r.Institution, r.KeyInformation, r.Sentence}
}
