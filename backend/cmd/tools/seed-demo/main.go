// Seeds a database with demo users, threads, comments and activity so the
// dashboard has something to show on a fresh install. Destructive: wipes all
// community data first.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/coursehub-dev/coursehub/backend/internal/storage/pg"
	"github.com/coursehub-dev/coursehub/shared/config"
	"github.com/coursehub-dev/coursehub/shared/domain"
)

var demoUsers = []domain.User{
	{Id: 1, Username: "Annu"},
	{Id: 2, Username: "Prachi"},
	{Id: 3, Username: "Chris"},
}

var demoCourses = []struct {
	Code  domain.CourseCode
	Title domain.CourseTitle
}{
	{"CMPT 310", "Intro to Artificial Intelligence"},
	{"CMPT 354", "Database Systems"},
	{"MACM 101", "Discrete Mathematics"},
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.MustLoad(configFolder)

	db, err := pg.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("TRUNCATE threads, comments, comment_likes, events RESTART IDENTITY CASCADE"); err != nil {
		log.Fatalf("Failed to wipe existing data: %v", err)
	}

	storage, err := pg.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer storage.Cleanup()

	annu, prachi, chris := demoUsers[0], demoUsers[1], demoUsers[2]

	for _, course := range demoCourses {
		if _, err := storage.GetOrCreateThread(course.Code, course.Title); err != nil {
			log.Fatalf("Failed to create thread %s: %v", course.Code, err)
		}
	}

	post := func(course domain.CourseCode, author domain.User, text string) domain.Comment {
		c, err := storage.CreateComment(domain.CommentCreationData{CourseCode: course, Author: author, Text: text})
		if err != nil {
			log.Fatalf("Failed to seed post: %v", err)
		}
		if _, err := storage.AppendEvent(domain.NewPostEvent(author, course, c.Id)); err != nil {
			log.Fatalf("Failed to seed post event: %v", err)
		}
		return c
	}
	reply := func(parent domain.Comment, author domain.User, text string) {
		c, err := storage.CreateComment(domain.CommentCreationData{
			CourseCode: parent.CourseCode, Author: author, Text: text, ParentId: &parent.Id,
		})
		if err != nil {
			log.Fatalf("Failed to seed reply: %v", err)
		}
		if _, err := storage.AppendEvent(domain.NewReplyEvent(author, parent.CourseCode, c.Id)); err != nil {
			log.Fatalf("Failed to seed reply event: %v", err)
		}
	}
	like := func(comment domain.Comment, user domain.User) {
		if _, err := storage.ToggleLike(comment.CourseCode, comment.Id, user.Id); err != nil {
			log.Fatalf("Failed to seed like: %v", err)
		}
		if _, err := storage.AppendEvent(domain.NewLikeEvent(user, comment.CourseCode, comment.Id)); err != nil {
			log.Fatalf("Failed to seed like event: %v", err)
		}
	}

	if _, err := storage.AppendEvent(domain.NewJoinEvent(annu)); err != nil {
		log.Fatalf("Failed to seed join event: %v", err)
	}

	studyBuddies := post("CMPT 310", prachi, "Anyone else taking CMPT 310 this term? Looking for study buddies!")
	midtermTips := post("CMPT 310", annu, "Midterm tips: focus on heuristics and practice with search problems.")
	post("CMPT 310", chris, "I loved the project component. Try building an A* pathfinder!")
	post("CMPT 354", chris, "Normalization finally clicked for me after assignment 2.")
	post("MACM 101", annu, "Induction proofs get easier with practice, promise.")

	reply(studyBuddies, annu, "Count me in! I want to go over the assignment this weekend.")
	reply(midtermTips, prachi, "Thanks! That course pack looks intimidating.")

	like(studyBuddies, annu)
	like(midtermTips, prachi)
	like(midtermTips, chris)

	log.Println("Demo data seeded.")
}
