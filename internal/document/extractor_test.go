package document

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Extractor", func() {
	var (
		scanner   *mockScanner
		extractor *Extractor
		doc       *Descriptor
		imageData []byte
		record    Record
		err       error
	)

	BeforeEach(func() {
		scanner = newMockScanner(chequeAnswer)
		doc = ChequeDocument
		imageData = jpegBytes()
	})

	JustBeforeEach(func() {
		var newErr error
		extractor, newErr = NewExtractorWithDeps(scanner, 0, &mockTimeSource{now: fixedTime})
		Expect(newErr).NotTo(HaveOccurred())
		record, err = extractor.Extract(context.Background(), doc, imageData, "image/jpeg")
	})

	When("the model returns a complete cheque", func() {
		It("should build the cheque record", func() {
			Expect(err).NotTo(HaveOccurred())
			cheque, ok := record.(*ChequeRecord)
			Expect(ok).To(BeTrue())
			Expect(cheque.DocumentType).To(Equal(TypeCheque))
			Expect(cheque.BankName).To(Equal("State Bank of India"))
			Expect(cheque.AccountHolderName).To(Equal("Ravi Kumar"))
			Expect(cheque.PayeeName).To(Equal("Asha Traders"))
			Expect(cheque.AmountNumbers).To(Equal("5000000"))
		})

		It("should derive the formatted amount and cheque number", func() {
			cheque := record.(*ChequeRecord)
			Expect(cheque.AmountFormatted).To(Equal("₹ 50,00,000/-"))
			Expect(cheque.ChequeNumber).To(Equal("343242"))
		})

		It("should stamp the extraction time", func() {
			Expect(record.(*ChequeRecord).ExtractedAt).To(Equal("2024-01-15T10:00:00Z"))
		})

		It("should send the cheque prompt and the JPEG unchanged", func() {
			Expect(scanner.calls).To(Equal(1))
			Expect(scanner.prompt).To(Equal(ChequeDocument.Prompt))
			Expect(scanner.image.MIMEType).To(Equal("image/jpeg"))
			Expect(scanner.image.Data).To(Equal(imageData))
		})

		It("should not bound the call when no timeout is configured", func() {
			Expect(scanner.hadDeadline).To(BeFalse())
		})
	})

	When("the model omits fields and sends a null", func() {
		BeforeEach(func() {
			scanner.answer = `{"bank_name": "HDFC Bank", "micr_code": null}`
		})

		It("should default every missing field to an empty string", func() {
			Expect(err).NotTo(HaveOccurred())
			cheque := record.(*ChequeRecord)
			Expect(cheque.BankName).To(Equal("HDFC Bank"))
			Expect(cheque.MICRCode).To(BeEmpty())
			Expect(cheque.PayeeName).To(BeEmpty())
			Expect(cheque.AmountFormatted).To(BeEmpty())
			Expect(cheque.ChequeNumber).To(BeEmpty())
		})
	})

	When("the model ignores derived fields it was never asked for", func() {
		BeforeEach(func() {
			scanner.answer = `{"amount_numbers": "1500", "amount_formatted": "fake", "cheque_number": "999999"}`
		})

		It("should recompute them", func() {
			cheque := record.(*ChequeRecord)
			Expect(cheque.AmountFormatted).To(Equal("₹ 1,500/-"))
			Expect(cheque.ChequeNumber).To(BeEmpty())
		})
	})

	DescribeTable("fenced answers parse to the same record",
		func(answer string) {
			s := newMockScanner(answer)
			e, newErr := NewExtractorWithDeps(s, 0, &mockTimeSource{now: fixedTime})
			Expect(newErr).NotTo(HaveOccurred())

			plain, plainErr := e.Extract(context.Background(), ChequeDocument, jpegBytes(), "image/jpeg")
			Expect(plainErr).NotTo(HaveOccurred())

			s.answer = chequeAnswer
			bare, bareErr := e.Extract(context.Background(), ChequeDocument, jpegBytes(), "image/jpeg")
			Expect(bareErr).NotTo(HaveOccurred())

			Expect(plain).To(Equal(bare))
		},
		Entry("json fence", "```json\n"+chequeAnswer+"\n```"),
		Entry("bare fence", "```\n"+chequeAnswer+"\n```"),
		Entry("surrounding whitespace", "\n\n  "+chequeAnswer+"  \n"),
	)

	When("the model answers with prose", func() {
		BeforeEach(func() {
			scanner.answer = "I could not read this cheque."
		})

		It("returns a parse ExtractionError", func() {
			var extractionErr *ExtractionError
			Expect(errors.As(err, &extractionErr)).To(BeTrue())
			Expect(errors.Is(err, ErrParse)).To(BeTrue())
			Expect(CauseName(err)).To(Equal("parse"))
			Expect(record).To(BeNil())
		})
	})

	When("the model answers with a nested value for a field", func() {
		BeforeEach(func() {
			scanner.answer = `{"bank_name": {"name": "SBI"}}`
		})

		It("returns a parse ExtractionError", func() {
			Expect(errors.Is(err, ErrParse)).To(BeTrue())
		})
	})

	When("the scanner fails", func() {
		BeforeEach(func() {
			scanner.scanErr = errors.New("quota exceeded")
		})

		It("returns a scan ExtractionError wrapping the cause", func() {
			Expect(errors.Is(err, ErrScan)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("quota exceeded")))
			Expect(CauseName(err)).To(Equal("scan"))
		})
	})

	When("the image cannot be decoded", func() {
		BeforeEach(func() {
			imageData = []byte("not an image")
		})

		It("returns an image ExtractionError without calling the scanner", func() {
			Expect(errors.Is(err, ErrUnreadableImage)).To(BeTrue())
			Expect(CauseName(err)).To(Equal("image"))
			Expect(scanner.calls).To(BeZero())
		})
	})

	When("extracting a GST certificate", func() {
		BeforeEach(func() {
			doc = GSTDocument
			scanner.answer = "```json\n" + `{
				"registration_number": "27AAPFU0939F1ZV",
				"legal_name": "Asha Traders LLP",
				"floor_number": "2",
				"building_number": "14B",
				"premises_name": "Sunrise Plaza",
				"road_street": "",
				"locality": "Andheri East",
				"city": "Mumbai",
				"pin_code": 400069
			}` + "\n```"
		})

		It("should build the GST record with an assembled address", func() {
			Expect(err).NotTo(HaveOccurred())
			gst := record.(*GSTRecord)
			Expect(gst.DocumentType).To(Equal(TypeGSTCertificate))
			Expect(gst.RegistrationNumber).To(Equal("27AAPFU0939F1ZV"))
			Expect(gst.FullAddress).To(Equal("Floor: 2, Building: 14B, Sunrise Plaza, Andheri East"))
			Expect(gst.PinCode).To(Equal("400069"))
			Expect(gst.TradeName).To(BeEmpty())
		})
	})

	When("extracting a passbook", func() {
		BeforeEach(func() {
			doc = PassbookDocument
			scanner.answer = `{"cif_number": "85012345678", "customer_name": "Meena Iyer", "account_type": "Savings"}`
		})

		It("should build the passbook record", func() {
			Expect(err).NotTo(HaveOccurred())
			passbook := record.(*PassbookRecord)
			Expect(passbook.DocumentType).To(Equal(TypePassbook))
			Expect(passbook.CIFNumber).To(Equal("85012345678"))
			Expect(passbook.CustomerName).To(Equal("Meena Iyer"))
			Expect(passbook.Email).To(BeEmpty())
			Expect(passbook.ExtractedAt).To(Equal("2024-01-15T10:00:00Z"))
		})
	})
})

var _ = Describe("Extractor timeout", func() {
	It("bounds the scanner call when configured", func() {
		scanner := newMockScanner(chequeAnswer)
		extractor, err := NewExtractorWithDeps(scanner, 30*time.Second, &mockTimeSource{now: fixedTime})
		Expect(err).NotTo(HaveOccurred())

		_, err = extractor.Extract(context.Background(), ChequeDocument, pngBytes(), "image/png")
		Expect(err).NotTo(HaveOccurred())
		Expect(scanner.hadDeadline).To(BeTrue())
	})
})

var _ = Describe("Extractor with an unregistered descriptor", func() {
	It("returns a plain error without calling the scanner", func() {
		scanner := newMockScanner(chequeAnswer)
		extractor, err := NewExtractorWithDeps(scanner, 0, &mockTimeSource{now: fixedTime})
		Expect(err).NotTo(HaveOccurred())

		_, err = extractor.Extract(context.Background(), &Descriptor{Type: "pan_card"}, jpegBytes(), "image/jpeg")
		Expect(err).To(MatchError(ContainSubstring(`unknown document type "pan_card"`)))
		var extractionErr *ExtractionError
		Expect(errors.As(err, &extractionErr)).To(BeFalse())
		Expect(CauseName(err)).To(BeEmpty())
		Expect(scanner.calls).To(BeZero())
	})
})
