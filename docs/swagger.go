// Package docs Trip Planner API.
//
// Мультимодальный планировщик поездок поверх OpenTripPlanner.
// Строит маршруты по нескольким типам поездки, отбирает доступные сервисы
// (paratransit, taxi, uber, lyft), считает тарифы и отдает travel patterns
// агентства с календарем бронирования.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
