package document

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Service", func() {
	var (
		storage    *mockStorage
		scanner    *mockScanner
		rasterizer *mockRasterizer
		service    *Service

		filename    string
		data        []byte
		contentType string
		record      Record
		err         error
	)

	BeforeEach(func() {
		storage = newMockStorage()
		scanner = newMockScanner(chequeAnswer)
		rasterizer = &mockRasterizer{pages: 1}

		filename = "cheque.jpg"
		data = jpegBytes()
		contentType = "image/jpeg"
	})

	JustBeforeEach(func() {
		extractor, newErr := NewExtractorWithDeps(scanner, 0, &mockTimeSource{now: fixedTime})
		Expect(newErr).NotTo(HaveOccurred())
		service = NewServiceWithDeps(extractor, storage, 300, rasterizer.rasterize, &mockIDGenerator{id: "test-id-123"})

		record, err = service.Process(context.Background(), ChequeDocument, filename, data, contentType)
	})

	When("processing an image succeeds", func() {
		It("should return the record", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Type()).To(Equal(TypeCheque))
		})

		It("should save the upload under an ID-prefixed name", func() {
			Expect(storage.saved).To(Equal([]string{"test-id-123_cheque.jpg"}))
		})

		It("should not rasterize", func() {
			Expect(rasterizer.calls).To(BeZero())
		})

		It("cleans up the saved file", func() {
			Expect(storage.files).To(BeEmpty())
		})
	})

	When("the upload is a PDF", func() {
		BeforeEach(func() {
			filename = "Cheque Scan.PDF"
			data = []byte("%PDF-1.7 fake")
			contentType = "application/pdf"
			rasterizer.pages = 3
		})

		It("should extract from the rasterized first page", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rasterizer.calls).To(Equal(1))
			Expect(scanner.calls).To(Equal(1))
			Expect(storage.saved).To(Equal([]string{
				"test-id-123_Cheque_Scan.pdf",
				"test-id-123_Cheque_Scan.pdf_page1.jpg",
			}))
		})

		It("cleans up the upload and the page image", func() {
			Expect(storage.files).To(BeEmpty())
		})
	})

	When("the PDF cannot be rasterized", func() {
		BeforeEach(func() {
			filename = "cheque.pdf"
			data = []byte("%PDF-broken")
			rasterizer.err = errors.New("cannot open document")
		})

		It("returns a server error, not an extraction failure", func() {
			Expect(err).To(MatchError(ContainSubstring("rasterizing PDF")))
			var extractionErr *ExtractionError
			Expect(errors.As(err, &extractionErr)).To(BeFalse())
		})

		It("cleans up the saved file", func() {
			Expect(storage.files).To(BeEmpty())
		})
	})

	When("the model answer is not JSON", func() {
		BeforeEach(func() {
			scanner.answer = "Sorry, I cannot help with that."
		})

		It("returns the extraction error", func() {
			Expect(errors.Is(err, ErrParse)).To(BeTrue())
			Expect(record).To(BeNil())
		})

		It("cleans up the saved file", func() {
			Expect(storage.files).To(BeEmpty())
		})
	})

	When("the scanner fails on a PDF", func() {
		BeforeEach(func() {
			filename = "cheque.pdf"
			data = []byte("%PDF-1.4")
			scanner.scanErr = errors.New("connection reset")
		})

		It("cleans up both temporary files", func() {
			Expect(errors.Is(err, ErrScan)).To(BeTrue())
			Expect(storage.saved).To(HaveLen(2))
			Expect(storage.files).To(BeEmpty())
		})
	})

	When("storage save fails", func() {
		var setupErr error

		BeforeEach(func() {
			setupErr = errors.New("disk full")
			storage.saveErr = setupErr
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(setupErr))
			Expect(scanner.calls).To(BeZero())
		})
	})

	When("cleanup fails", func() {
		BeforeEach(func() {
			storage.deleteErr = errors.New("permission denied")
		})

		It("still returns the record", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record).NotTo(BeNil())
		})
	})
})

var _ = DescribeTable("sanitizeFilename",
	func(in, want string) {
		Expect(sanitizeFilename(in)).To(Equal(want))
	},
	Entry("plain name", "cheque.jpg", "cheque.jpg"),
	Entry("spaces become underscores", "my cheque scan.PNG", "my_cheque_scan.png"),
	Entry("path components are dropped", "../../etc/passwd", "passwd"),
	Entry("windows paths are dropped", `C:\Users\asha\gst.pdf`, "gst.pdf"),
	Entry("special characters are removed", "che<que>$.jpg", "cheque.jpg"),
	Entry("nothing usable left", "$$$.jpg", "upload.jpg"),
)
