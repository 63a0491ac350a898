package film

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const LastUpdateLayout = "2006-01-02T15:04:05.999999999"

func stringAV(s *string) ddbtypes.AttributeValue {
	if s == nil {
		return &ddbtypes.AttributeValueMemberNULL{Value: true}
	}
	return &ddbtypes.AttributeValueMemberS{Value: *s}
}

func numberAV(n *int64) ddbtypes.AttributeValue {
	if n == nil {
		return &ddbtypes.AttributeValueMemberNULL{Value: true}
	}
	return &ddbtypes.AttributeValueMemberN{Value: strconv.FormatInt(*n, 10)}
}

func timeAV(t *time.Time) ddbtypes.AttributeValue {
	if t == nil {
		return &ddbtypes.AttributeValueMemberNULL{Value: true}
	}
	return &ddbtypes.AttributeValueMemberS{Value: t.UTC().Format(LastUpdateLayout)}
}

// FilmItem converts a film to its destination item. film_id and free text are
// strings, counts and amounts are numbers, last_update_time is text.
func FilmItem(f *Film) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"film_id":          &ddbtypes.AttributeValueMemberS{Value: strconv.FormatInt(f.FilmID, 10)},
		"title":            stringAV(f.Title),
		"description":      stringAV(f.Description),
		"rating":           stringAV(f.Rating),
		"release_year":     numberAV(f.ReleaseYear),
		"length":           numberAV(f.Length),
		"language_id":      numberAV(f.LanguageID),
		"rental_duration":  numberAV(f.RentalDuration),
		"rental_rate":      numberAV(f.RentalRate),
		"replacement_cost": numberAV(f.ReplacementCost),
		"last_update_time": timeAV(f.LastUpdate),
		"special_features": stringAV(f.SpecialFeatures),
		"fulltext":         stringAV(f.Fulltext),
	}
}

// FilmFromItem reads back an item written by FilmItem. Absent attributes and
// NULLs both decode to nil.
func FilmFromItem(item map[string]ddbtypes.AttributeValue) (*Film, error) {
	id, ok := item["film_id"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("item has no string film_id")
	}
	filmID, err := strconv.ParseInt(id.Value, 10, 64)
	if err != nil {
		return nil, err
	}
	f := &Film{FilmID: filmID}
	for name, dest := range map[string]any{
		"title":            &f.Title,
		"description":      &f.Description,
		"rating":           &f.Rating,
		"release_year":     &f.ReleaseYear,
		"length":           &f.Length,
		"language_id":      &f.LanguageID,
		"rental_duration":  &f.RentalDuration,
		"rental_rate":      &f.RentalRate,
		"replacement_cost": &f.ReplacementCost,
		"special_features": &f.SpecialFeatures,
		"fulltext":         &f.Fulltext,
	} {
		av, ok := item[name]
		if !ok {
			continue
		}
		err := attributevalue.Unmarshal(av, dest)
		if err != nil {
			return nil, fmt.Errorf("film %d attribute %s: %w", filmID, name, err)
		}
	}
	var lastUpdate *string
	if av, ok := item["last_update_time"]; ok {
		err := attributevalue.Unmarshal(av, &lastUpdate)
		if err != nil {
			return nil, fmt.Errorf("film %d attribute last_update_time: %w", filmID, err)
		}
	}
	if lastUpdate != nil {
		t, err := time.Parse(LastUpdateLayout, *lastUpdate)
		if err != nil {
			return nil, fmt.Errorf("film %d attribute last_update_time: %w", filmID, err)
		}
		f.LastUpdate = &t
	}
	return f, nil
}
