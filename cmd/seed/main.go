// Command seed generates a random provider roster file for local
// development. Lines use the two-space-delimited format LoadRoster reads:
//
//	D  First  Last  M/D/YYYY  LOCATION  SPECIALTY  NPI
//	T  First  Last  M/D/YYYY  LOCATION  RATE
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

func main() {
	out := flag.String("out", "providers.txt", "output roster file")
	doctors := flag.Int("doctors", 10, "number of doctors")
	technicians := flag.Int("technicians", 6, "number of technicians")
	seed := flag.Int64("seed", 0, "random seed (0 uses the current time)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger.Info().Str("out", *out).Int("doctors", *doctors).Int("technicians", *technicians).Msg("seed starting")

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(uint64(*seed))

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("create roster file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	locations := clinic.LocationNames()
	specialties := []clinic.Specialty{clinic.Family, clinic.Pediatrician, clinic.Allergist}

	for i := 0; i < *doctors; i++ {
		fmt.Fprintf(w, "D  %s  %s  %s  %s  %s  %d\n",
			faker.FirstName(),
			faker.LastName(),
			randomDOB(faker),
			locations[faker.Number(0, len(locations)-1)],
			specialties[faker.Number(0, len(specialties)-1)],
			faker.Number(10000000, 99999999),
		)
	}
	for i := 0; i < *technicians; i++ {
		fmt.Fprintf(w, "T  %s  %s  %s  %s  %d\n",
			faker.FirstName(),
			faker.LastName(),
			randomDOB(faker),
			locations[faker.Number(0, len(locations)-1)],
			faker.Number(100, 300),
		)
	}

	if err := w.Flush(); err != nil {
		logger.Fatal().Err(err).Msg("write roster file")
	}
	logger.Info().Msg("seed complete")
}

func randomDOB(faker *gofakeit.Faker) string {
	year := faker.Number(1955, 2000)
	month := faker.Number(1, 12)
	day := faker.Number(1, 28)
	return fmt.Sprintf("%d/%d/%d", month, day, year)
}
