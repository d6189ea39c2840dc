package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	recruitment "github.com/Swetcha17/recruitment-automation"
	"github.com/Swetcha17/recruitment-automation/config"
)

// seedResume is one sample candidate in the generated tree, stored under
// <role>/<name>/resume.txt the way the parser expects.
type seedResume struct {
	role string
	name string
	text string
}

var seeds = []seedResume{
	{
		role: "data-engineering",
		name: "Priya Raman",
		text: `Priya Raman
Senior Data Engineer
priya.raman@example.com | (512) 555-0147
Austin, TX | US Citizen

Senior data engineer with 8+ years of experience building batch and streaming
data pipelines. Expert in Python, SQL, Airflow, and Spark on AWS. Led the
migration of a nightly warehouse load to incremental Kafka ingestion.`,
	},
	{
		role: "data-engineering",
		name: "Tomasz Nowak",
		text: `Tomasz Nowak
Data Engineer
tomasz.nowak@example.com | (312) 555-0183
Chicago, IL | Green Card

Data engineer with 4 years of experience maintaining ETL jobs in Python and
SQL. Comfortable with dbt, Postgres, and Airflow. Built data quality checks
that cut pipeline incidents in half.`,
	},
	{
		role: "data-engineering",
		name: "Ines Castillo",
		text: `Ines Castillo
Analytics Engineer
ines.castillo@example.com | (206) 555-0171
Seattle, WA | Requires Sponsorship

Analytics engineer with 3 years of experience modelling warehouse tables in
SQL and dbt. Ships dashboards backed by Snowflake and writes Python for
ingestion glue. Strong on testing and documentation.`,
	},
	{
		role: "backend",
		name: "Marcus Webb",
		text: `Marcus Webb
Senior Backend Engineer
marcus.webb@example.com | (646) 555-0118
New York, NY | US Citizen

Backend engineer with 9+ years of experience designing REST and gRPC services
in Go and Java. Operated Kubernetes clusters and Kafka event buses at scale.
Mentors junior engineers and owns the reliability runbook.`,
	},
	{
		role: "backend",
		name: "Yuki Tanaka",
		text: `Yuki Tanaka
Backend Developer
yuki.tanaka@example.com | (415) 555-0139
San Francisco, CA | H-1B

Backend developer with 5 years of experience in Go and Python microservices.
Built payment reconciliation services on Postgres and Redis. Enjoys profiling
and squeezing latency out of hot paths.`,
	},
	{
		role: "frontend",
		name: "Devon Clarke",
		text: `Devon Clarke
Frontend Developer
devon.clarke@example.com | (303) 555-0152
Denver, CO | US Citizen

Frontend developer with 3 years of experience shipping React and TypeScript
applications. Cares about accessibility and bundle size. Built a design
system used across four product teams.`,
	},
	{
		role: "frontend",
		name: "Amelie Laurent",
		text: `Amelie Laurent
Senior Frontend Engineer
amelie.laurent@example.com | (617) 555-0126
Boston, MA | Green Card

Frontend engineer with 7+ years of experience in React, TypeScript, and
GraphQL. Led the rewrite of a legacy Angular console into a modular React
app with measurable Core Web Vitals wins.`,
	},
	{
		role: "design",
		name: "Marta Kowalski",
		text: `Marta Kowalski
Product Designer
marta.kowalski@example.com | (971) 555-0164
Portland, OR

Product designer with 5 years of experience crafting design systems in Figma.
Prototypes in CSS and collaborates closely with frontend engineers. Ran
usability studies that reshaped the onboarding funnel.`,
	},
	{
		role: "design",
		name: "Hassan Idris",
		text: `Hassan Idris
UX Designer
hassan.idris@example.com | (404) 555-0197
Atlanta, GA | US Citizen

UX designer with 2 years of experience in Figma and user research. Maps
journeys, writes usability test scripts, and iterates quickly on feedback.
Background in front-of-house service design.`,
	},
	{
		role: "devops",
		name: "Sofia Petrova",
		text: `Sofia Petrova
Site Reliability Engineer
sofia.petrova@example.com | (737) 555-0115
Austin, TX | US Citizen

SRE with 6+ years of experience running Kubernetes, Terraform, and AWS
infrastructure. Wrote the incident response playbook and cut mean time to
recovery by a third. Fluent in Go and Bash tooling.`,
	},
	{
		role: "devops",
		name: "Liam O'Brien",
		text: `Liam O'Brien
DevOps Engineer
liam.obrien@example.com | (929) 555-0142
Remote | US Citizen

DevOps engineer with 4 years of experience automating CI/CD with GitHub
Actions and ArgoCD. Manages Docker build farms and Prometheus monitoring.
Previously supported an on-prem Jenkins fleet.`,
	},
	{
		role: "product",
		name: "Grace Obi",
		text: `Grace Obi
Product Manager
grace.obi@example.com | (312) 555-0158
Chicago, IL | US Citizen

Product manager with 6 years of experience shipping B2B data products.
Writes crisp specs, runs discovery interviews, and prioritizes ruthlessly.
Comfortable in SQL for self-serve analytics.`,
	},
}

var (
	outDir  = flag.String("out", "resumes", "directory to write the sample resume tree into")
	doBuild = flag.Bool("build", false, "run the full pipeline over the generated tree")
	cfgPath = flag.String("config", "", "path to the YAML config file (used with -build)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	for _, seed := range seeds {
		path := filepath.Join(*outDir, seed.role, seed.name, "resume.txt")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			panic(err)
		}
		if err := os.WriteFile(path, []byte(seed.text), 0o644); err != nil {
			panic(err)
		}
	}
	slog.Info("wrote sample resume tree", "resumes", len(seeds), "dir", *outDir)

	if !*doBuild {
		return
	}

	cfg := config.MustLoad(*cfgPath)
	cfg.Resumes.Dir = *outDir

	sys, err := recruitment.NewSystem(cfg)
	if err != nil {
		panic(err)
	}
	defer sys.Close()

	pipe, err := sys.NewPipeline()
	if err != nil {
		panic(err)
	}

	statuses, err := pipe.Run(context.Background(), *outDir)
	for _, status := range statuses {
		slog.Info("pipeline stage finished",
			"stage", status.Stage,
			"state", status.State.String(),
			"documents", status.Documents,
			"skipped", status.Skipped)
	}
	if err != nil {
		panic(err)
	}
}
