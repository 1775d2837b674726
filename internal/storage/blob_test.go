package storage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"spendwise/internal/storage"
)

var _ = Describe("BlobStore", func() {
	var store *storage.BlobStore

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&storage.Blob{})
		Expect(err).NotTo(HaveOccurred())

		store = storage.NewBlobStore(db)
	})

	Describe("Get", func() {
		It("should return ErrBlobNotFound for a missing key", func() {
			_, err := store.Get("missing")

			Expect(err).To(MatchError(storage.ErrBlobNotFound))
		})

		It("should return the stored value", func() {
			Expect(store.Put(storage.BlobKeySettings, []byte(`{"theme":"dark"}`))).To(Succeed())

			value, err := store.Get(storage.BlobKeySettings)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal([]byte(`{"theme":"dark"}`)))
		})
	})

	Describe("Put", func() {
		It("should replace an existing value for the same key", func() {
			Expect(store.Put(storage.BlobKeyExpenses, []byte(`[]`))).To(Succeed())
			Expect(store.Put(storage.BlobKeyExpenses, []byte(`[{"id":"a"}]`))).To(Succeed())

			value, err := store.Get(storage.BlobKeyExpenses)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal([]byte(`[{"id":"a"}]`)))
		})

		It("should keep the two well-known keys independent", func() {
			Expect(store.Put(storage.BlobKeyExpenses, []byte(`[]`))).To(Succeed())
			Expect(store.Put(storage.BlobKeySettings, []byte(`{}`))).To(Succeed())

			expenses, err := store.Get(storage.BlobKeyExpenses)
			Expect(err).NotTo(HaveOccurred())
			settings, err := store.Get(storage.BlobKeySettings)
			Expect(err).NotTo(HaveOccurred())

			Expect(expenses).To(Equal([]byte(`[]`)))
			Expect(settings).To(Equal([]byte(`{}`)))
		})
	})

	Describe("Delete", func() {
		It("should remove the blob", func() {
			Expect(store.Put(storage.BlobKeyExpenses, []byte(`[]`))).To(Succeed())
			Expect(store.Delete(storage.BlobKeyExpenses)).To(Succeed())

			_, err := store.Get(storage.BlobKeyExpenses)
			Expect(err).To(MatchError(storage.ErrBlobNotFound))
		})

		It("should treat a missing key as a no-op", func() {
			Expect(store.Delete("missing")).To(Succeed())
		})
	})
})
