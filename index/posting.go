package index

// Field is the tag of a recipe field a term was found in.
type Field string

const (
	FieldTitle           Field = "title"
	FieldCategory        Field = "category"
	FieldKeywords        Field = "keywords"
	FieldIngredients     Field = "ingredients"
	FieldDescription     Field = "description"
	FieldLongDescription Field = "longDescription"
	FieldSteps           Field = "steps"
)

// fieldWeights is the base weight of one occurrence of a term in a field.
var fieldWeights = map[Field]float64{
	FieldTitle:           10,
	FieldCategory:        8,
	FieldKeywords:        6,
	FieldIngredients:     6,
	FieldDescription:     5,
	FieldLongDescription: 4,
	FieldSteps:           3,
}

// Weight returns the base weight of the field. Unknown fields weigh 1.
func (f Field) Weight() float64 {
	if w, ok := fieldWeights[f]; ok {
		return w
	}
	return 1
}

// PostingEntry records how a term occurs in one recipe: the summed base weight
// of every occurrence and the set of fields it occurred in.
type PostingEntry struct {
	Score  float64 `json:"score"`
	Fields []Field `json:"fields"` // Set semantics, kept in first-seen order
}

// HasField reports whether the entry carries the given field tag.
func (p *PostingEntry) HasField(field Field) bool {
	for _, f := range p.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func (p *PostingEntry) addField(field Field) {
	if !p.HasField(field) {
		p.Fields = append(p.Fields, field)
	}
}

// FieldScore sums the weights of the entry's fields.
func (p *PostingEntry) FieldScore() float64 {
	score := 0.0
	for _, f := range p.Fields {
		score += f.Weight()
	}
	return score
}

// PostingList maps a recipe ID to the entry for one term.
type PostingList map[string]*PostingEntry
