package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// BlogPostsCodec decodes blog posts and expands eye_catch into the public
// URL of the uploaded image under baseURL.
func BlogPostsCodec(baseURL string) EntityCodec[baser.BlogPost] {
	return EntityCodec[baser.BlogPost]{
		Singular: "blogPost",
		Plural:   "blogPosts",
		Decode: func(record baser.Record) (*baser.BlogPost, error) {
			post, err := DecodeEntity[baser.BlogPost](record)
			if err != nil {
				return nil, err
			}

			post.EyeCatch = EyeCatchURL(baseURL, post.BlogContentID, post.EyeCatch)

			return post, nil
		},
	}
}

// EyeCatchURL returns the public URL of a blog post image. Empty names stay
// empty and absolute URLs are returned unchanged.
func EyeCatchURL(baseURL string, blogContentID int, name string) string {
	if name == "" {
		return ""
	}

	if parsed, err := url.Parse(name); err == nil && parsed.IsAbs() {
		return name
	}

	return strings.TrimSuffix(baseURL, "/") + constants.BlogFilesPath + "/" +
		strconv.Itoa(blogContentID) + "/blog_posts/" + strings.TrimPrefix(name, "/")
}

// BlogCategoriesClient adds per-blog listing to the category resource.
type BlogCategoriesClient struct {
	*Resource[baser.BlogCategory]
}

// NewBlogCategoriesClient creates a blog category client.
func NewBlogCategoriesClient(dispatcher baser.Dispatcher) *BlogCategoriesClient {
	return &BlogCategoriesClient{
		Resource: NewResource(dispatcher, baser.EndpointBlogCategories, EntityCodec[baser.BlogCategory]{
			Singular: "blogCategory",
			Plural:   "blogCategories",
		}),
	}
}

// ListByContent lists the categories of one blog.
func (c *BlogCategoriesClient) ListByContent(ctx context.Context, blogContentID int, opts baser.Options) ([]baser.BlogCategory, error) {
	merged := opts.Clone()
	merged["blog_content_id"] = blogContentID

	return c.List(ctx, merged)
}
