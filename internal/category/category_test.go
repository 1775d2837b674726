package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spendwise/internal/category"
)

var _ = Describe("Category Catalog", func() {
	Describe("All", func() {
		It("should return the nine fixed categories in display order", func() {
			catalog := category.All()

			Expect(catalog).To(HaveLen(9))
			Expect(catalog[0].Name).To(Equal("Food & Drinks"))
			Expect(catalog[len(catalog)-1].Name).To(Equal("Other"))
		})

		It("should give every category a display color", func() {
			for _, c := range category.All() {
				Expect(c.Color).To(MatchRegexp(`^#[0-9a-f]{6}$`))
			}
		})

		It("should return an independent copy", func() {
			first := category.All()
			first[0].Name = "mutated"

			Expect(category.All()[0].Name).To(Equal("Food & Drinks"))
		})
	})

	Describe("IsValid", func() {
		It("should accept catalog members", func() {
			Expect(category.IsValid("Food & Drinks")).To(BeTrue())
			Expect(category.IsValid("Other")).To(BeTrue())
		})

		It("should reject unknown names", func() {
			Expect(category.IsValid("Gambling")).To(BeFalse())
			Expect(category.IsValid("")).To(BeFalse())
		})

		It("should be case sensitive", func() {
			Expect(category.IsValid("food & drinks")).To(BeFalse())
		})
	})

	Describe("ColorFor", func() {
		It("should return the catalog color for a member", func() {
			Expect(category.ColorFor("Food & Drinks")).To(Equal("#f87171"))
		})

		It("should fall back to the neutral color for unknown names", func() {
			Expect(category.ColorFor("Gambling")).To(Equal(category.DefaultColor))
		})
	})

	Describe("Names", func() {
		It("should mirror the catalog order", func() {
			names := category.Names()

			Expect(names).To(HaveLen(9))
			Expect(names[0]).To(Equal("Food & Drinks"))
		})
	})
})

var _ = Describe("Category Handler", func() {
	It("should serve the catalog as JSON", func() {
		handler := category.NewHandler()

		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		w := httptest.NewRecorder()
		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			Categories []category.Category `json:"categories"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(9))
	})
})
