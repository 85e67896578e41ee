// Command seed imports mock network data from CSV files through the running
// sixpath API. Contact rows whose email already exists on the server are
// skipped, so the importer can be re-run safely.
//
// Expected contacts CSV header:
//
//	first_name,last_name,company,sector,email,phone,linkedin_url,how_i_know_them,when_i_met_them,notes
//
// Optional connections CSV (endpoints resolved by contact email):
//
//	person1_email,person2_email,relationship,strength,context,notes
//
// Optional referrals CSV (attributed to the logged-in account):
//
//	company,position,application_date,interview_date,status,notes
//
// Empty cells become null fields; dates are parsed as YYYY-MM-DD.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sixpath/sixpath-server/internal/adapter"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/models"
)

const requestTimeout = 30 * time.Second

func main() {
	var (
		csvPath        = flag.String("csv", "", "path to the contacts CSV file")
		connectionsCSV = flag.String("connections-csv", "", "optional path to a connections CSV file")
		referralsCSV   = flag.String("referrals-csv", "", "optional path to a referrals CSV file")
		addr           = flag.String("addr", "http://localhost:8000", "sixpath server address")
		username       = flag.String("username", "", "account username")
		password       = flag.String("password", "", "account password")
		register       = flag.Bool("register", false, "register the account before importing")
		firstName      = flag.String("first-name", "", "account first name (with -register)")
		lastName       = flag.String("last-name", "", "account last name (with -register)")
		dryRun         = flag.Bool("dry-run", false, "parse and report without creating anything")
	)
	flag.Parse()

	log := logger.NewLogger("sixpath-seed")

	if *csvPath == "" || *username == "" || *password == "" {
		log.Fatal().Msg("-csv, -username and -password are required")
	}

	contacts, err := readContacts(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("csv", *csvPath).Msg("error reading contacts file")
	}
	log.Info().Int("rows", len(contacts)).Msg("contacts parsed")

	ctx := context.Background()

	client, err := adapter.NewHTTPAPIClient(*addr, requestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	if *register {
		account, err := client.Register(ctx, models.RegisterRequest{
			Username:  *username,
			Password:  *password,
			FirstName: *firstName,
			LastName:  *lastName,
		})
		if err != nil {
			log.Fatal().Err(err).Str("username", *username).Msg("registration failed")
		}
		log.Info().Int64("id", account.ID).Str("username", *username).Msg("account registered")
	} else if err := client.Login(ctx, models.LoginRequest{Username: *username, Password: *password}); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}

	byEmail, err := contactsByEmail(ctx, client)
	if err != nil {
		log.Fatal().Err(err).Msg("error listing existing contacts")
	}

	var created, skipped int
	for _, contact := range contacts {
		if contact.Email != nil {
			if _, ok := byEmail[strings.ToLower(*contact.Email)]; ok {
				log.Debug().Str("email", *contact.Email).Msg("skipping existing contact")
				skipped++
				continue
			}
		}

		if *dryRun {
			log.Info().Str("first_name", contact.FirstName).Str("last_name", contact.LastName).Msg("would create contact")
			created++
			continue
		}

		person, err := client.CreateContact(ctx, contact)
		if err != nil {
			log.Fatal().Err(err).Str("first_name", contact.FirstName).Str("last_name", contact.LastName).Msg("error creating contact")
		}
		if person.Email != nil {
			byEmail[strings.ToLower(*person.Email)] = person.ID
		}

		log.Info().Int64("id", person.ID).Str("first_name", person.FirstName).Str("last_name", person.LastName).Msg("contact created")
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Bool("dry_run", *dryRun).Msg("contacts imported")

	if *connectionsCSV != "" {
		if err := importConnections(ctx, client, log, *connectionsCSV, byEmail, *dryRun); err != nil {
			log.Fatal().Err(err).Str("csv", *connectionsCSV).Msg("error importing connections")
		}
	}

	if *referralsCSV != "" {
		if err := importReferrals(ctx, client, log, *referralsCSV, *dryRun); err != nil {
			log.Fatal().Err(err).Str("csv", *referralsCSV).Msg("error importing referrals")
		}
	}
}

// contactsByEmail pages through the existing contacts and maps their emails,
// lower-cased, to server ids. The map doubles as the duplicate check and the
// endpoint resolver for the connections import.
func contactsByEmail(ctx context.Context, client adapter.APIClient) (map[string]int64, error) {
	const pageSize = 500

	byEmail := make(map[string]int64)
	for offset := uint64(0); ; offset += pageSize {
		page, err := client.ListContacts(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, person := range page {
			if person.Email != nil {
				byEmail[strings.ToLower(*person.Email)] = person.ID
			}
		}

		if len(page) < pageSize {
			return byEmail, nil
		}
	}
}

func importConnections(ctx context.Context, client adapter.APIClient, log *logger.Logger, path string, byEmail map[string]int64, dryRun bool) error {
	rows, index, err := readTable(path, "person1_email", "person2_email")
	if err != nil {
		return err
	}

	var created int
	for i, record := range rows {
		line := i + 2

		req, err := connectionFromRecord(record, index, byEmail)
		if err != nil {
			return fmt.Errorf("csv line %d: %w", line, err)
		}

		if dryRun {
			log.Info().Int64("person1_id", req.Person1ID).Int64("person2_id", req.Person2ID).Msg("would create connection")
			created++
			continue
		}

		connection, err := client.CreateConnection(ctx, req)
		if err != nil {
			return fmt.Errorf("csv line %d: %w", line, err)
		}

		log.Info().Int64("id", connection.ID).Msg("connection created")
		created++
	}

	log.Info().Int("created", created).Bool("dry_run", dryRun).Msg("connections imported")
	return nil
}

func connectionFromRecord(record []string, index map[string]int, byEmail map[string]int64) (models.CreateConnectionRequest, error) {
	cell, optional := recordAccessors(record, index)

	resolve := func(column string) (int64, error) {
		email := strings.ToLower(cell(column))
		if email == "" {
			return 0, fmt.Errorf("%s must be non-empty", column)
		}
		id, ok := byEmail[email]
		if !ok {
			return 0, fmt.Errorf("no contact with email %q", email)
		}
		return id, nil
	}

	person1ID, err := resolve("person1_email")
	if err != nil {
		return models.CreateConnectionRequest{}, err
	}
	person2ID, err := resolve("person2_email")
	if err != nil {
		return models.CreateConnectionRequest{}, err
	}

	req := models.CreateConnectionRequest{
		Person1ID:    person1ID,
		Person2ID:    person2ID,
		Relationship: optional("relationship"),
		Context:      optional("context"),
		Notes:        optional("notes"),
	}

	if raw := cell("strength"); raw != "" {
		strength, err := strconv.Atoi(raw)
		if err != nil {
			return models.CreateConnectionRequest{}, fmt.Errorf("invalid strength %q: %w", raw, err)
		}
		req.Strength = &strength
	}

	return req, nil
}

func importReferrals(ctx context.Context, client adapter.APIClient, log *logger.Logger, path string, dryRun bool) error {
	rows, index, err := readTable(path, "company")
	if err != nil {
		return err
	}

	var created int
	for i, record := range rows {
		line := i + 2

		req, err := referralFromRecord(record, index)
		if err != nil {
			return fmt.Errorf("csv line %d: %w", line, err)
		}

		if dryRun {
			log.Info().Str("company", valueOr(req.Company, "")).Msg("would create referral")
			created++
			continue
		}

		// ReferrerID stays zero: the server attributes the referral to the
		// logged-in account.
		referral, err := client.CreateReferral(ctx, req)
		if err != nil {
			return fmt.Errorf("csv line %d: %w", line, err)
		}

		log.Info().Int64("id", referral.ID).Msg("referral created")
		created++
	}

	log.Info().Int("created", created).Bool("dry_run", dryRun).Msg("referrals imported")
	return nil
}

func referralFromRecord(record []string, index map[string]int) (models.CreateReferralRequest, error) {
	cell, optional := recordAccessors(record, index)

	req := models.CreateReferralRequest{
		Company:  optional("company"),
		Position: optional("position"),
		Status:   optional("status"),
		Notes:    optional("notes"),
	}

	if raw := cell("application_date"); raw != "" {
		applied, err := models.ParseDate(raw)
		if err != nil {
			return models.CreateReferralRequest{}, fmt.Errorf("invalid application_date %q: %w", raw, err)
		}
		req.ApplicationDate = &applied
	}

	if raw := cell("interview_date"); raw != "" {
		interviewed, err := models.ParseDate(raw)
		if err != nil {
			return models.CreateReferralRequest{}, fmt.Errorf("invalid interview_date %q: %w", raw, err)
		}
		req.InterviewDate = &interviewed
	}

	return req, nil
}

func readContacts(path string) ([]models.CreatePersonRequest, error) {
	rows, index, err := readTable(path, "first_name", "last_name")
	if err != nil {
		return nil, err
	}

	contacts := make([]models.CreatePersonRequest, 0, len(rows))
	for i, record := range rows {
		contact, err := contactFromRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", i+2, err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

func contactFromRecord(record []string, index map[string]int) (models.CreatePersonRequest, error) {
	cell, optional := recordAccessors(record, index)

	contact := models.CreatePersonRequest{
		FirstName:    cell("first_name"),
		LastName:     cell("last_name"),
		Company:      optional("company"),
		Sector:       optional("sector"),
		Email:        optional("email"),
		Phone:        optional("phone"),
		LinkedInURL:  optional("linkedin_url"),
		HowIKnowThem: optional("how_i_know_them"),
		Notes:        optional("notes"),
	}

	if contact.FirstName == "" || contact.LastName == "" {
		return models.CreatePersonRequest{}, fmt.Errorf("first_name and last_name must be non-empty")
	}

	if raw := cell("when_i_met_them"); raw != "" {
		met, err := models.ParseDate(raw)
		if err != nil {
			return models.CreatePersonRequest{}, fmt.Errorf("invalid when_i_met_them %q: %w", raw, err)
		}
		contact.WhenIMetThem = &met
	}

	return contact, nil
}

// readTable reads a CSV file and returns its data rows plus a column-name
// index built from the header. Required columns must be present.
func readTable(path string, required ...string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return nil, nil, fmt.Errorf("csv header misses required column %q", column)
		}
	}

	var rows [][]string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading csv line %d: %w", line, err)
		}
		rows = append(rows, record)
	}

	return rows, index, nil
}

// recordAccessors returns the cell and optional-cell helpers shared by the
// per-row converters.
func recordAccessors(record []string, index map[string]int) (func(string) string, func(string) *string) {
	cell := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	optional := func(column string) *string {
		if v := cell(column); v != "" {
			return &v
		}
		return nil
	}

	return cell, optional
}

func valueOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
