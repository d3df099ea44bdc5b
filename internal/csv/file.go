package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/google/uuid"

	"ensei.io/mission-engine/internal/aws"
	"ensei.io/mission-engine/pkg/errors"
)

// WriteCsvAndUploadToS3 writes records to a temp csv file and uploads it to
// the configured bucket with public read.
func WriteCsvAndUploadToS3(s3ObjectKey string, records [][]string) error {
	filePath := fmt.Sprintf("%v/%v.csv", os.TempDir(), uuid.New().String())
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.WrapAndReport(err, "open temp file")
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return errors.WrapAndReport(err, "write csv to temp file")
	}
	writer.Flush()

	if err := file.Close(); err != nil {
		return errors.WrapAndReport(err, "close csv file")
	}
	defer os.Remove(filePath)

	file, err = os.Open(filePath)
	if err != nil {
		return errors.WrapAndReport(err, "open csv file")
	}
	defer file.Close()
	err = aws.Client.PutFileToS3WithPublicRead(context.TODO(), s3ObjectKey, file)
	return errors.WrapAndReport(err, "upload csv to s3")
}
