package film

import (
	"context"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dustin/go-humanize"
	"github.com/nathants/filmsync/lib"
)

type ItemWriter interface {
	PutItem(ctx context.Context, table string, item map[string]ddbtypes.AttributeValue) error
}

// Persist writes one item per film, in order, one call each. There is no
// batching and no rollback: on the first failed write the films before it
// stay written and the films after it are never attempted.
func Persist(ctx context.Context, w ItemWriter, table string, films []*Film) (int, error) {
	for i, f := range films {
		err := w.PutItem(ctx, table, FilmItem(f))
		if err != nil {
			return i, &PersistError{Written: i, FilmID: f.FilmID, Err: err}
		}
	}
	lib.Logger.Println("stored", humanize.Comma(int64(len(films))), "films into", table)
	return len(films), nil
}
