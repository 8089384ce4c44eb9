package document

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltJournal", func() {
	var (
		journal *BoltJournal
		dbPath  string
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "journal.db")
		var err error
		journal, err = NewBoltJournal(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if journal != nil {
			journal.Close()
		}
	})

	Describe("Record", func() {
		It("assigns an ID when none is set", func() {
			entry := &JournalEntry{DocumentType: TypeCheque, Outcome: OutcomeSuccess}
			Expect(journal.Record(entry)).To(Succeed())
			Expect(entry.ID).NotTo(BeEmpty())
		})

		It("keeps a caller supplied ID", func() {
			entry := &JournalEntry{ID: "fixed-id", Outcome: OutcomeInvalidRequest}
			Expect(journal.Record(entry)).To(Succeed())
			Expect(entry.ID).To(Equal("fixed-id"))
		})
	})

	Describe("List", func() {
		When("the journal is empty", func() {
			It("returns an empty list", func() {
				entries, err := journal.List(10)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).NotTo(BeNil())
				Expect(entries).To(BeEmpty())
			})
		})

		When("entries exist", func() {
			BeforeEach(func() {
				for i, name := range []string{"first.jpg", "second.pdf", "third.png"} {
					Expect(journal.Record(&JournalEntry{
						DocumentType: TypePassbook,
						Filename:     name,
						Outcome:      OutcomeExtractionFailed,
						Cause:        "parse",
						DurationMS:   int64(100 * (i + 1)),
						CreatedAt:    fixedTime.Add(time.Duration(i) * time.Second),
					})).To(Succeed())
				}
			})

			It("returns them newest first", func() {
				entries, err := journal.List(10)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(3))
				Expect(entries[0].Filename).To(Equal("third.png"))
				Expect(entries[2].Filename).To(Equal("first.jpg"))
			})

			It("honors the limit", func() {
				entries, err := journal.List(2)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(2))
				Expect(entries[1].Filename).To(Equal("second.pdf"))
			})

			It("round-trips the entry", func() {
				entries, err := journal.List(1)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries[0].DocumentType).To(Equal(TypePassbook))
				Expect(entries[0].Cause).To(Equal("parse"))
				Expect(entries[0].DurationMS).To(Equal(int64(300)))
				Expect(entries[0].CreatedAt.Equal(fixedTime.Add(2 * time.Second))).To(BeTrue())
			})

			It("returns nothing for a non-positive limit", func() {
				entries, err := journal.List(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(BeEmpty())
			})

			It("survives a reopen", func() {
				Expect(journal.Close()).To(Succeed())
				var err error
				journal, err = NewBoltJournal(dbPath)
				Expect(err).NotTo(HaveOccurred())

				entries, err := journal.List(10)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(3))
			})
		})
	})
})
