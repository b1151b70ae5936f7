package domain

// RecallRecord is the normalized subset of an upstream food enforcement
// record. Fields missing upstream stay nil and serialize as null.
type RecallRecord struct {
	ProductDescription   *string `json:"product_description"`
	RecallingFirm        *string `json:"recalling_firm"`
	ReasonForRecall      *string `json:"reason_for_recall"`
	Classification       *string `json:"classification"`
	RecallInitiationDate *string `json:"recall_initiation_date"`
}

// CloneRecalls returns a deep copy of records, preserving nil.
func CloneRecalls(records []RecallRecord) []RecallRecord {
	if records == nil {
		return nil
	}
	out := make([]RecallRecord, len(records))
	for i, r := range records {
		out[i] = RecallRecord{
			ProductDescription:   cloneString(r.ProductDescription),
			RecallingFirm:        cloneString(r.RecallingFirm),
			ReasonForRecall:      cloneString(r.ReasonForRecall),
			Classification:       cloneString(r.Classification),
			RecallInitiationDate: cloneString(r.RecallInitiationDate),
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
