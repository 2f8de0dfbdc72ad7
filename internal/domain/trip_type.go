package domain

// TripType - вид передвижения
type TripType string

const (
	TripTypeTransit     TripType = "transit"
	TripTypeParatransit TripType = "paratransit"
	TripTypeTaxi        TripType = "taxi"
	TripTypeCar         TripType = "car"
	TripTypeWalk        TripType = "walk"
	TripTypeBicycle     TripType = "bicycle"
	TripTypeCarPark     TripType = "car_park"
	TripTypeUber        TripType = "uber"
	TripTypeLyft        TripType = "lyft"
)

// ValidTripTypes returns all trip types in planning order
func ValidTripTypes() []TripType {
	return []TripType{
		TripTypeTransit,
		TripTypeParatransit,
		TripTypeTaxi,
		TripTypeCar,
		TripTypeWalk,
		TripTypeBicycle,
		TripTypeCarPark,
		TripTypeUber,
		TripTypeLyft,
	}
}

func IsValidTripType(t string) bool {
	for _, v := range ValidTripTypes() {
		if string(v) == t {
			return true
		}
	}
	return false
}

// ParseTripTypes оставляет только известные типы, без повторов, в исходном порядке
func ParseTripTypes(raw []string) []TripType {
	seen := make(map[TripType]bool, len(raw))
	result := make([]TripType, 0, len(raw))
	for _, s := range raw {
		if !IsValidTripType(s) {
			continue
		}
		t := TripType(s)
		if seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}

// FareBearing - для этих типов стоимость берется из ответа роутера
func (t TripType) FareBearing() bool {
	switch t {
	case TripTypeTransit, TripTypeParatransit, TripTypeCarPark:
		return true
	}
	return false
}

// DirectlyPriced - типы, у которых есть собственные сервисы с тарифом
func (t TripType) DirectlyPriced() bool {
	switch t {
	case TripTypeParatransit, TripTypeTaxi, TripTypeUber, TripTypeLyft:
		return true
	}
	return false
}

// RouterBacked - типы, для которых запрашиваются маршруты у роутера
func (t TripType) RouterBacked() bool {
	switch t {
	case TripTypeTaxi, TripTypeUber, TripTypeLyft:
		return false
	}
	return true
}

// DriveLike - для car/bicycle время в пути равно времени "пешком" у роутера
func (t TripType) DriveLike() bool {
	return t == TripTypeCar || t == TripTypeBicycle
}
