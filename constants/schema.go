package constants

// Field names of the tour package schema, in column order.
const (
	FieldID                    = "id"
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldPrice                 = "price"
	FieldDuration              = "duration"
	FieldCategory              = "category"
	FieldLocations             = "locations"
	FieldInclusions            = "inclusions"
	FieldExclusions            = "exclusions"
	FieldFeatured              = "featured"
	FieldImageURL              = "image_url"
	FieldGalleryImages         = "gallery_images"
	FieldItinerary             = "itinerary"
	FieldPDFURL                = "pdf_url"
	FieldCreatedAt             = "created_at"
	FieldUpdatedAt             = "updated_at"
	FieldCountry               = "country"
	FieldActivities            = "activities"
	FieldCities                = "cities"
	FieldPlaces                = "places"
	FieldHotels                = "hotels"
	FieldFlightsIncluded       = "flights_included"
	FieldFoodDetails           = "food_details"
	FieldAirportTransfer       = "airport_transfer"
	FieldGuideIncluded         = "guide_included"
	FieldShoppingStops         = "shopping_stops"
	FieldIsGroupTour           = "is_group_tour"
	FieldMinimumPax            = "minimum_pax"
	FieldRoomOccupancy         = "room_occupancy"
	FieldVisaGuidance          = "visa_guidance"
	FieldLanguageSupport       = "language_support"
	FieldDifficultyLevel       = "difficulty_level"
	FieldSustainabilityRating  = "sustainability_rating"
	FieldRecommendedAgeGroup   = "recommended_age_group"
	FieldSeasonalAvailability  = "seasonal_availability"
	FieldAmenities             = "amenities"
	FieldCovidSafetyMeasures   = "covid_safety_measures"
	FieldCancellationPolicy    = "cancellation_policy"
	FieldSpecialRequirements   = "special_requirements"
	FieldAccessibilityFeatures = "accessibility_features"
)

// Fields is the ordered field schema every record carries and every dataset must contain.
var Fields = []string{
	FieldID, FieldTitle, FieldDescription, FieldPrice, FieldDuration, FieldCategory, FieldLocations,
	FieldInclusions, FieldExclusions, FieldFeatured, FieldImageURL, FieldGalleryImages, FieldItinerary,
	FieldPDFURL, FieldCreatedAt, FieldUpdatedAt, FieldCountry, FieldActivities, FieldCities, FieldPlaces,
	FieldHotels, FieldFlightsIncluded, FieldFoodDetails, FieldAirportTransfer, FieldGuideIncluded,
	FieldShoppingStops, FieldIsGroupTour, FieldMinimumPax, FieldRoomOccupancy, FieldVisaGuidance,
	FieldLanguageSupport, FieldDifficultyLevel, FieldSustainabilityRating, FieldRecommendedAgeGroup,
	FieldSeasonalAvailability, FieldAmenities, FieldCovidSafetyMeasures, FieldCancellationPolicy,
	FieldSpecialRequirements, FieldAccessibilityFeatures,
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(Fields))
	for i, f := range Fields {
		m[f] = i
	}
	return m
}()

// IsField reports whether name is part of the field schema.
func IsField(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

// FieldPosition returns the schema position of name, or -1.
func FieldPosition(name string) int {
	if i, ok := fieldIndex[name]; ok {
		return i
	}
	return -1
}

// Defaults used by the rule engine when a document has content but no stronger signal.
const (
	DefaultPrice = "On Request"

	Yes = "Yes"
	No  = "No"
)
