package document

import (
	"strings"

	"github.com/zombor/document-extractor/internal/normalize"
)

// DocumentType discriminates the extracted record variants
type DocumentType string

// Document types, as reported in the document_type field of a record
const (
	TypeCheque         DocumentType = "cheque"
	TypeGSTCertificate DocumentType = "gst_certificate"
	TypePassbook       DocumentType = "passbook"
)

// Record is one extracted document. Every field is a string; absent data is "".
type Record interface {
	Type() DocumentType
}

// ChequeRecord holds the fields read from a bank cheque
type ChequeRecord struct {
	DocumentType      DocumentType `json:"document_type"`
	BankName          string       `json:"bank_name"`
	AccountHolderName string       `json:"account_holder_name"`
	PayeeName         string       `json:"payee_name"`
	AmountWords       string       `json:"amount_words"`
	AmountNumbers     string       `json:"amount_numbers"`
	AmountFormatted   string       `json:"amount_formatted"`
	Date              string       `json:"date"`
	AccountNumber     string       `json:"account_number"`
	IFSCCode          string       `json:"ifsc_code"`
	MICRCode          string       `json:"micr_code"`
	ChequeNumber      string       `json:"cheque_number"`
	PrefixNumber      string       `json:"prefix_number"`
	BranchName        string       `json:"branch_name"`
	BranchCode        string       `json:"branch_code"`
	ExtractedAt       string       `json:"extracted_at"`
}

func (r *ChequeRecord) Type() DocumentType { return TypeCheque }

// GSTRecord holds the fields read from a GST registration certificate
type GSTRecord struct {
	DocumentType       DocumentType `json:"document_type"`
	RegistrationNumber string       `json:"registration_number"`
	LegalName          string       `json:"legal_name"`
	TradeName          string       `json:"trade_name"`
	Constitution       string       `json:"constitution"`
	FloorNumber        string       `json:"floor_number"`
	BuildingNumber     string       `json:"building_number"`
	PremisesName       string       `json:"premises_name"`
	RoadStreet         string       `json:"road_street"`
	Locality           string       `json:"locality"`
	FullAddress        string       `json:"full_address"`
	City               string       `json:"city"`
	District           string       `json:"district"`
	State              string       `json:"state"`
	PinCode            string       `json:"pin_code"`
	ValidityFrom       string       `json:"validity_from"`
	ValidityTo         string       `json:"validity_to"`
	RegistrationType   string       `json:"registration_type"`
	ApprovingOfficer   string       `json:"approving_officer"`
	Designation        string       `json:"designation"`
	Office             string       `json:"office"`
	IssueDate          string       `json:"issue_date"`
	ExtractedAt        string       `json:"extracted_at"`
}

func (r *GSTRecord) Type() DocumentType { return TypeGSTCertificate }

// PassbookRecord holds the account holder details from a passbook cover page
type PassbookRecord struct {
	DocumentType      DocumentType `json:"document_type"`
	CIFNumber         string       `json:"cif_number"`
	AccountNumber     string       `json:"account_number"`
	CustomerName      string       `json:"customer_name"`
	FatherHusbandName string       `json:"father_husband_name"`
	Address           string       `json:"address"`
	Phone             string       `json:"phone"`
	Email             string       `json:"email"`
	DateOfBirth       string       `json:"date_of_birth"`
	MinorStatus       string       `json:"minor_status"`
	NomineeRegNumber  string       `json:"nominee_reg_number"`
	BranchName        string       `json:"branch_name"`
	BranchCode        string       `json:"branch_code"`
	IFSCCode          string       `json:"ifsc_code"`
	MICRCode          string       `json:"micr_code"`
	AccountType       string       `json:"account_type"`
	DateOfIssue       string       `json:"date_of_issue"`
	DateOfActivation  string       `json:"date_of_activation"`
	ExtractedAt       string       `json:"extracted_at"`
}

func (r *PassbookRecord) Type() DocumentType { return TypePassbook }

// Descriptor is everything that differs between document types: the prompt,
// the fields the model is asked for and how a record is built from them.
type Descriptor struct {
	Type DocumentType
	// Slug is the route segment under /api/extract/
	Slug string
	// Prompt lists the fields and formats the model must return
	Prompt string
	// Fields are the keys requested from the model, derived fields excluded
	Fields []string

	uploadNoun  string // "cheque image"
	dataNoun    string // "Cheque data"
	failureNoun string // "cheque"
	readable    string // "image"

	build   func(f map[string]string, extractedAt string) Record
	summary func(Record) []any
}

// NoFileMessage is shown when the upload has no file part
func (d *Descriptor) NoFileMessage() string {
	return "Please upload a " + d.uploadNoun + " or PDF"
}

// SuccessMessage accompanies a successful extraction
func (d *Descriptor) SuccessMessage() string {
	return d.dataNoun + " extracted successfully"
}

// FailureMessage accompanies a failed extraction
func (d *Descriptor) FailureMessage() string {
	return "Failed to extract " + d.failureNoun + " data. Please ensure the " + d.readable + " is clear and readable."
}

// Documents returns the supported document types in route order
func Documents() []*Descriptor {
	return []*Descriptor{ChequeDocument, GSTDocument, PassbookDocument}
}

// ChequeDocument reads bank cheques; it derives the formatted amount and cheque number
var ChequeDocument = &Descriptor{
	Type:   TypeCheque,
	Slug:   "cheque",
	Prompt: chequePrompt,
	Fields: []string{
		"bank_name", "account_holder_name", "payee_name", "amount_words", "amount_numbers",
		"date", "account_number", "ifsc_code", "micr_code", "prefix_number",
		"branch_name", "branch_code",
	},
	uploadNoun:  "cheque image",
	dataNoun:    "Cheque data",
	failureNoun: "cheque",
	readable:    "image",
	build: func(f map[string]string, extractedAt string) Record {
		return &ChequeRecord{
			DocumentType:      TypeCheque,
			BankName:          f["bank_name"],
			AccountHolderName: f["account_holder_name"],
			PayeeName:         f["payee_name"],
			AmountWords:       f["amount_words"],
			AmountNumbers:     f["amount_numbers"],
			AmountFormatted:   normalize.FormatIndianCurrency(f["amount_numbers"]),
			Date:              f["date"],
			AccountNumber:     f["account_number"],
			IFSCCode:          f["ifsc_code"],
			MICRCode:          f["micr_code"],
			ChequeNumber:      normalize.ChequeNumberFromMICR(f["micr_code"]),
			PrefixNumber:      f["prefix_number"],
			BranchName:        f["branch_name"],
			BranchCode:        f["branch_code"],
			ExtractedAt:       extractedAt,
		}
	},
	summary: func(r Record) []any {
		c := r.(*ChequeRecord)
		return []any{
			"account_holder", c.AccountHolderName,
			"payee", c.PayeeName,
			"amount", c.AmountFormatted,
			"cheque_number", c.ChequeNumber,
		}
	},
}

// GSTDocument reads GST registration certificates (Form GST REG-06) and assembles full_address
var GSTDocument = &Descriptor{
	Type:   TypeGSTCertificate,
	Slug:   "gst",
	Prompt: gstPrompt,
	Fields: []string{
		"registration_number", "legal_name", "trade_name", "constitution",
		"floor_number", "building_number", "premises_name", "road_street", "locality",
		"city", "district", "state", "pin_code", "validity_from", "validity_to",
		"registration_type", "approving_officer", "designation", "office", "issue_date",
	},
	uploadNoun:  "GST certificate image",
	dataNoun:    "GST certificate data",
	failureNoun: "GST",
	readable:    "certificate",
	build: func(f map[string]string, extractedAt string) Record {
		return &GSTRecord{
			DocumentType:       TypeGSTCertificate,
			RegistrationNumber: f["registration_number"],
			LegalName:          f["legal_name"],
			TradeName:          f["trade_name"],
			Constitution:       f["constitution"],
			FloorNumber:        f["floor_number"],
			BuildingNumber:     f["building_number"],
			PremisesName:       f["premises_name"],
			RoadStreet:         f["road_street"],
			Locality:           f["locality"],
			FullAddress:        fullAddress(f),
			City:               f["city"],
			District:           f["district"],
			State:              f["state"],
			PinCode:            f["pin_code"],
			ValidityFrom:       f["validity_from"],
			ValidityTo:         f["validity_to"],
			RegistrationType:   f["registration_type"],
			ApprovingOfficer:   f["approving_officer"],
			Designation:        f["designation"],
			Office:             f["office"],
			IssueDate:          f["issue_date"],
			ExtractedAt:        extractedAt,
		}
	},
	summary: func(r Record) []any {
		g := r.(*GSTRecord)
		return []any{"gstin", g.RegistrationNumber, "legal_name", g.LegalName}
	},
}

// PassbookDocument reads the account holder details on a passbook cover page
var PassbookDocument = &Descriptor{
	Type:   TypePassbook,
	Slug:   "passbook",
	Prompt: passbookPrompt,
	Fields: []string{
		"cif_number", "account_number", "customer_name", "father_husband_name", "address",
		"phone", "email", "date_of_birth", "minor_status", "nominee_reg_number",
		"branch_name", "branch_code", "ifsc_code", "micr_code", "account_type",
		"date_of_issue", "date_of_activation",
	},
	uploadNoun:  "passbook image",
	dataNoun:    "Passbook data",
	failureNoun: "passbook",
	readable:    "cover page",
	build: func(f map[string]string, extractedAt string) Record {
		return &PassbookRecord{
			DocumentType:      TypePassbook,
			CIFNumber:         f["cif_number"],
			AccountNumber:     f["account_number"],
			CustomerName:      f["customer_name"],
			FatherHusbandName: f["father_husband_name"],
			Address:           f["address"],
			Phone:             f["phone"],
			Email:             f["email"],
			DateOfBirth:       f["date_of_birth"],
			MinorStatus:       f["minor_status"],
			NomineeRegNumber:  f["nominee_reg_number"],
			BranchName:        f["branch_name"],
			BranchCode:        f["branch_code"],
			IFSCCode:          f["ifsc_code"],
			MICRCode:          f["micr_code"],
			AccountType:       f["account_type"],
			DateOfIssue:       f["date_of_issue"],
			DateOfActivation:  f["date_of_activation"],
			ExtractedAt:       extractedAt,
		}
	},
	summary: func(r Record) []any {
		p := r.(*PassbookRecord)
		return []any{"cif", p.CIFNumber, "customer", p.CustomerName}
	},
}

// fullAddress joins the present street-level parts of a GST address
func fullAddress(f map[string]string) string {
	var parts []string
	if v := f["floor_number"]; v != "" {
		parts = append(parts, "Floor: "+v)
	}
	if v := f["building_number"]; v != "" {
		parts = append(parts, "Building: "+v)
	}
	for _, k := range []string{"premises_name", "road_street", "locality"} {
		if v := f[k]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
