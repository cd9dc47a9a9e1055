// ABOUTME: CLI commands for one-shot post operations.
// ABOUTME: Provides list, add, edit, and delete subcommands backed by a fresh post store.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/models"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage posts",
	Long:  "List, add, edit, and delete posts on the configured API.",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long:  "Fetch and print posts from the server.",
	RunE:  runPostsList,
}

var postsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a post",
	Long:  "Create a post on the server.",
	RunE:  runPostsAdd,
}

var postsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a post",
	Long:  "Update the title and/or body of a post on the server.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsEdit,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Long:  "Delete a post on the server.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsDelete,
}

// Flags
var (
	postTitle  string
	postBody   string
	postUserID int
	listLimit  int
	listUser   int
)

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsAddCmd)
	postsCmd.AddCommand(postsEditCmd)
	postsCmd.AddCommand(postsDeleteCmd)

	postsListCmd.Flags().IntVar(&listLimit, "limit", 10, "Maximum number of posts to show (0 for all)")
	postsListCmd.Flags().IntVar(&listUser, "user", 0, "Only show posts by this user id")

	postsAddCmd.Flags().StringVar(&postTitle, "title", "", "Post title")
	postsAddCmd.Flags().StringVar(&postBody, "body", "", "Post body")
	postsAddCmd.Flags().IntVar(&postUserID, "user", 0, "Author user id (defaults to config)")
	_ = postsAddCmd.MarkFlagRequired("title")

	postsEditCmd.Flags().StringVar(&postTitle, "title", "", "New title")
	postsEditCmd.Flags().StringVar(&postBody, "body", "", "New body")
}

func runPostsList(cmd *cobra.Command, args []string) error {
	globalPostStore.FetchPosts(cmd.Context())
	if err := globalPostStore.Err(); err != nil {
		return err
	}

	count := 0
	for _, post := range globalPostStore.Posts() {
		if listUser > 0 && post.UserID != listUser {
			continue
		}
		if listLimit > 0 && count >= listLimit {
			break
		}
		count++
		printPost(post)
	}
	if count == 0 {
		fmt.Println("No posts found.")
	}
	return nil
}

func runPostsAdd(cmd *cobra.Command, args []string) error {
	userID := postUserID
	if userID <= 0 {
		userID = globalConfig.User.ID
	}

	draft := models.NewDraft(userID, postTitle, postBody)
	if err := draft.Validate(); err != nil {
		return err
	}

	globalPostStore.AddPost(cmd.Context(), draft)
	if err := globalPostStore.Err(); err != nil {
		return err
	}

	posts := globalPostStore.Posts()
	created := posts[len(posts)-1]
	fmt.Printf("Post created (ID: %d)\n", created.ID)
	if globalPostStore.IsLocal(created) {
		fmt.Println("Note: the server did not persist this post; it exists only in this session.")
	}
	return nil
}

func runPostsEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("body") {
		return fmt.Errorf("nothing to change - pass --title and/or --body")
	}

	post, err := loadPost(cmd, id)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("title") {
		post.Title = postTitle
	}
	if cmd.Flags().Changed("body") {
		post.Body = postBody
	}
	if err := post.Validate(); err != nil {
		return err
	}

	globalPostStore.EditPost(cmd.Context(), post)
	if err := globalPostStore.Err(); err != nil {
		return err
	}
	updated, _ := globalPostStore.Post(id)
	printPost(updated)
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := loadPost(cmd, id); err != nil {
		return err
	}

	globalPostStore.DeletePost(cmd.Context(), id)
	if err := globalPostStore.Err(); err != nil {
		return err
	}
	fmt.Printf("Post %d deleted\n", id)
	return nil
}

// loadPost fetches the server's posts and returns the one with the given id.
func loadPost(cmd *cobra.Command, id int) (models.Post, error) {
	globalPostStore.FetchPosts(cmd.Context())
	if err := globalPostStore.Err(); err != nil {
		return models.Post{}, err
	}
	post, ok := globalPostStore.Post(id)
	if !ok {
		return models.Post{}, fmt.Errorf("post %d not found", id)
	}
	return post, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

func printPost(post models.Post) {
	fmt.Printf("--- #%d by user %d\n%s\n", post.ID, post.UserID, post.Title)
	if post.Body != "" {
		fmt.Printf("%s\n", post.Body)
	}
	fmt.Println()
}
