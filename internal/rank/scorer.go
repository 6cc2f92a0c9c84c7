package rank

import "jobclean/internal/domain"

type Scorer interface {
	Score(l domain.Listing) (score int, tags []string)
}
