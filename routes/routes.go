package routes

// Routes package cung cấp tất cả routing functions cho Address Extractor Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*)
// - web.go: Web routes (/, /docs)
//
// Sử dụng:
// routes.SetupAllRoutes(router, addressController, adminController)
