package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"climate-science-service/query"
)

// WriteTSV renders a result set as tab-separated values: one header row in
// the select statement's column order, then one row per record.
func WriteTSV(w io.Writer, result *query.ResultSet) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(result.Columns); err != nil {
		return err
	}
	row := make([]string, len(result.Columns))
	for _, record := range result.Records {
		for i, column := range result.Columns {
			row[i] = formatValue(record[column])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
