package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	"github.com/kubev2v/capacity-planner/internal/handlers"
	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

var _ = Describe("Inventory Handlers", func() {
	var (
		mockInventory *MockInventoryService
		handler       *handlers.Handler
		router        *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockInventory = &MockInventoryService{}
		handler = handlers.New(nil, mockInventory, nil, nil)
		router = gin.New()
		router.GET("/inventory", handler.GetInventory)
		router.PUT("/inventory", handler.UpdateInventory)
		router.POST("/inventory/rvtools", handler.ImportRVTools)
	})

	Describe("GetInventory", func() {
		// Given a stored fleet summary
		// When we request the inventory
		// Then it should return the summary with 200 OK
		It("should return the fleet summary", func() {
			// Arrange
			mockInventory.InventoryResult = &models.FleetSummary{
				VMCount:   40,
				VCPUs:     300,
				MemoryGiB: 1000,
				Source:    models.InventorySourceManual,
			}
			req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			var response v1.FleetSummary
			err := json.Unmarshal(w.Body.Bytes(), &response)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.VMCount).To(Equal(40))
			Expect(response.Source).To(Equal("manual"))
		})

		// Given no inventory has been stored yet
		// When we request the inventory
		// Then it should return 404 Not Found
		It("should return 404 when empty", func() {
			// Arrange
			mockInventory.InventoryError = srvErrors.NewInventoryNotFoundError()
			req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("UpdateInventory", func() {
		// Given valid manual totals
		// When we put the inventory
		// Then it should store them and return 200 OK
		It("should store manual totals", func() {
			// Arrange
			body := v1.InventoryUpdateRequest{VMCount: 40, VCPUs: 300, MemoryGiB: 1000, ProvisionedStorageGiB: 2000}
			bodyBytes, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPut, "/inventory", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockInventory.SetManualCallCount).To(Equal(1))
			Expect(mockInventory.LastFleet.VCPUs).To(Equal(300.0))
		})

		// Given a negative total
		// When we put the inventory
		// Then binding validation should reject it with 400
		It("should return 400 for negative totals", func() {
			// Arrange
			body := map[string]any{"vmCount": -1}
			bodyBytes, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPut, "/inventory", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(mockInventory.SetManualCallCount).To(Equal(0))
		})
	})

	Describe("ImportRVTools", func() {
		// Given a parseable export uploaded as the raw body
		// When we post it
		// Then it should return the parsed summary with 200 OK
		It("should import a raw body upload", func() {
			// Arrange
			mockInventory.ImportResult = &models.FleetSummary{VMCount: 12, Source: models.InventorySourceRVTools}
			req := httptest.NewRequest(http.MethodPost, "/inventory/rvtools", bytes.NewReader([]byte("xlsx-bytes")))
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockInventory.ImportCallCount).To(Equal(1))
			var response v1.FleetSummary
			err := json.Unmarshal(w.Body.Bytes(), &response)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.VMCount).To(Equal(12))
			Expect(response.Source).To(Equal("rvtools"))
		})

		// Given an export the parser rejects
		// When we post it
		// Then it should return 400 Bad Request with the parse error
		It("should return 400 for an unusable spreadsheet", func() {
			// Arrange
			mockInventory.ImportError = srvErrors.NewInvalidSpreadsheetError("missing vInfo sheet")
			req := httptest.NewRequest(http.MethodPost, "/inventory/rvtools", bytes.NewReader([]byte("not an xlsx")))
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var response map[string]any
			err := json.Unmarshal(w.Body.Bytes(), &response)
			Expect(err).NotTo(HaveOccurred())
			Expect(response["error"]).To(ContainSubstring("vInfo"))
		})
	})
})
