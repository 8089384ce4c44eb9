package normalize

import "regexp"

var (
	// A digit run enclosed by the on-us (⑈) or transit (⑆) symbols, in any pairing
	micrDelimited = regexp.MustCompile(`[⑈⑆]\s*(\d+)\s*[⑈⑆]`)
	// Transcriptions often lose the symbols; the serial is the first 6-digit group
	micrSerial = regexp.MustCompile(`\b\d{6}\b`)
)

// ChequeNumberFromMICR returns the cheque serial number from a MICR line, or ""
func ChequeNumberFromMICR(micr string) string {
	if micr == "" {
		return ""
	}
	if m := micrDelimited.FindStringSubmatch(micr); m != nil {
		return m[1]
	}
	return micrSerial.FindString(micr)
}
